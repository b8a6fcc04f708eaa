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

// Package netutil converts between IPv4 addresses and their 32-bit integer
// form and formats hardware addresses.
package netutil

import (
	"encoding/binary"
	"net"
	"net/netip"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidIPv4 is returned for strings that are not dotted-quad IPv4
	// addresses.
	ErrInvalidIPv4 = errors.New("invalid IPv4 address")
	// ErrInvalidPrefix is returned for prefix lengths above 32.
	ErrInvalidPrefix = errors.New("invalid IPv4 prefix length")
	// ErrInvalidHardwareAddr is returned for hardware addresses that are not
	// 6 bytes long.
	ErrInvalidHardwareAddr = errors.New("invalid ethernet address")
)

// IPv4ToLong returns the address s as a big-endian integer, so "1.2.3.4"
// becomes 0x01020304.
func IPv4ToLong(s string) (uint32, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidIPv4, "%q: %v", s, err)
	}
	if !addr.Is4() {
		return 0, errors.Wrapf(ErrInvalidIPv4, "%q is not IPv4", s)
	}
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:]), nil
}

// LongToIPv4 is the inverse of IPv4ToLong.
func LongToIPv4(v uint32) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b).String()
}

// IPv4Matches reports whether test and match share their first netBits bits.
// A prefix of 0 matches any pair of addresses.
func IPv4Matches(test, match string, netBits uint8) (bool, error) {
	if netBits > 32 {
		return false, errors.Wrapf(ErrInvalidPrefix, "/%d", netBits)
	}
	a, err := IPv4ToLong(test)
	if err != nil {
		return false, err
	}
	b, err := IPv4ToLong(match)
	if err != nil {
		return false, err
	}
	mask := ^uint32(0) << (32 - netBits)
	return a&mask == b&mask, nil
}

// EtherNtoa formats a 6-byte ethernet address as lowercase colon separated
// hex, e.g. "ab:57:d8:36:da:88".
func EtherNtoa(hw []byte) (string, error) {
	if len(hw) != 6 {
		return "", errors.Wrapf(ErrInvalidHardwareAddr, "%d bytes", len(hw))
	}
	return net.HardwareAddr(hw).String(), nil
}
