// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package list

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// toSlice returns the values head to tail. Useful for testing.
func (l *List[T]) toSlice() []T {
	var r []T
	l.All(func(_ int, v T) bool {
		r = append(r, v)
		return true
	})
	return r
}

func (l *List[T]) toReversedSlice() []T {
	var r []T
	l.Backward(func(_ int, v T) bool {
		r = append(r, v)
		return true
	})
	return r
}

func TestEmpty(t *testing.T) {
	var l List[int]
	require.EqualValues(t, 0, l.Len())
	_, ok := l.Head()
	require.False(t, ok)
	_, ok = l.Tail()
	require.False(t, ok)
	_, ok = l.PopHead()
	require.False(t, ok)
	_, ok = l.PopTail()
	require.False(t, ok)
	_, err := l.At(0)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = l.DeleteAt(0)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.Nil(t, l.toSlice())
}

func TestPushPop(t *testing.T) {
	l := New[int]()
	l.PushTail(1)
	l.PushTail(2)
	l.PushHead(0)
	require.Equal(t, []int{0, 1, 2}, l.toSlice())
	require.Equal(t, []int{2, 1, 0}, l.toReversedSlice())

	v, ok := l.Head()
	require.True(t, ok)
	require.EqualValues(t, 0, v)
	v, ok = l.Tail()
	require.True(t, ok)
	require.EqualValues(t, 2, v)

	v, ok = l.PopTail()
	require.True(t, ok)
	require.EqualValues(t, 2, v)
	v, ok = l.PopHead()
	require.True(t, ok)
	require.EqualValues(t, 0, v)
	require.Equal(t, []int{1}, l.toSlice())

	v, ok = l.PopHead()
	require.True(t, ok)
	require.EqualValues(t, 1, v)
	require.EqualValues(t, 0, l.Len())
	_, ok = l.Tail()
	require.False(t, ok)
}

func TestInsertAt(t *testing.T) {
	l := New[string]()
	require.NoError(t, l.InsertAt(0, "b"))
	require.NoError(t, l.InsertAt(0, "a"))
	require.NoError(t, l.InsertAt(2, "d"))
	require.NoError(t, l.InsertAt(2, "c"))
	require.Equal(t, []string{"a", "b", "c", "d"}, l.toSlice())
	require.Equal(t, []string{"d", "c", "b", "a"}, l.toReversedSlice())

	require.ErrorIs(t, l.InsertAt(5, "x"), ErrOutOfRange)
	require.ErrorIs(t, l.InsertAt(-1, "x"), ErrOutOfRange)
}

func TestDeleteAt(t *testing.T) {
	l := New[int]()
	for i := 0; i < 5; i++ {
		l.PushTail(i)
	}

	v, err := l.DeleteAt(2)
	require.NoError(t, err)
	require.EqualValues(t, 2, v)
	require.Equal(t, []int{0, 1, 3, 4}, l.toSlice())

	v, err = l.DeleteAt(0)
	require.NoError(t, err)
	require.EqualValues(t, 0, v)
	v, err = l.DeleteAt(l.Len() - 1)
	require.NoError(t, err)
	require.EqualValues(t, 4, v)
	require.Equal(t, []int{1, 3}, l.toSlice())
	require.Equal(t, []int{3, 1}, l.toReversedSlice())

	_, err = l.DeleteAt(2)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestDeleteDuringIteration(t *testing.T) {
	l := New[int]()
	for i := 0; i < 10; i++ {
		l.PushTail(i)
	}
	deleted := 0
	l.All(func(pos int, v int) bool {
		if v%2 == 0 {
			_, err := l.DeleteAt(pos - deleted)
			require.NoError(t, err)
			deleted++
		}
		return true
	})
	require.Equal(t, []int{1, 3, 5, 7, 9}, l.toSlice())
}

func TestDeleteAheadDuringIteration(t *testing.T) {
	l := New[string]()
	for _, v := range []string{"a", "b", "c", "d"} {
		l.PushTail(v)
	}
	// Deleting the successor of the current node hands the removed node to
	// yield once more and then carries on past it.
	var seen []string
	l.All(func(_ int, v string) bool {
		if v == "a" {
			removed, err := l.DeleteAt(1)
			require.NoError(t, err)
			require.Equal(t, "b", removed)
		}
		seen = append(seen, v)
		return true
	})
	require.Equal(t, []string{"a", "b", "c", "d"}, seen)
	require.Equal(t, []string{"a", "c", "d"}, l.toSlice())
	require.Equal(t, []string{"d", "c", "a"}, l.toReversedSlice())
}

func TestStopIteration(t *testing.T) {
	l := New[int]()
	for i := 0; i < 10; i++ {
		l.PushTail(i)
	}
	var seen []int
	l.All(func(_ int, v int) bool {
		seen = append(seen, v)
		return len(seen) < 3
	})
	require.Equal(t, []int{0, 1, 2}, seen)
}

func TestClear(t *testing.T) {
	l := New[int]()
	for i := 0; i < 10; i++ {
		l.PushTail(i)
	}
	l.Clear()
	require.EqualValues(t, 0, l.Len())
	require.Nil(t, l.toSlice())
	l.PushTail(42)
	require.Equal(t, []int{42}, l.toSlice())
}

func TestRandom(t *testing.T) {
	l := New[int]()
	var e []int
	for i := 0; i < 5000; i++ {
		switch r := rand.Float64(); {
		case r < 0.25:
			v := rand.Int()
			l.PushTail(v)
			e = append(e, v)
		case r < 0.40:
			v := rand.Int()
			l.PushHead(v)
			e = append([]int{v}, e...)
		case r < 0.60:
			pos := rand.Intn(len(e) + 1)
			v := rand.Int()
			require.NoError(t, l.InsertAt(pos, v))
			e = append(e[:pos], append([]int{v}, e[pos:]...)...)
		case r < 0.85:
			if len(e) == 0 {
				_, err := l.DeleteAt(0)
				require.ErrorIs(t, err, ErrOutOfRange)
				continue
			}
			pos := rand.Intn(len(e))
			v, err := l.DeleteAt(pos)
			require.NoError(t, err)
			require.EqualValues(t, e[pos], v)
			e = append(e[:pos], e[pos+1:]...)
		default:
			if len(e) == 0 {
				continue
			}
			pos := rand.Intn(len(e))
			v, err := l.At(pos)
			require.NoError(t, err)
			require.EqualValues(t, e[pos], v)
		}
		require.EqualValues(t, len(e), l.Len())
	}
	if len(e) == 0 {
		e = nil
	}
	require.Equal(t, e, l.toSlice())
}
