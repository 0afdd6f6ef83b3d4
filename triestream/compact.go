// Copyright 2022 The triehash Authors
// This file is part of the triehash library.
//
// The triehash library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The triehash library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the triehash library. If not, see <http://www.gnu.org/licenses/>.

package triestream

import "encoding/binary"

// appendCompact appends the SCALE compact encoding of n. The two low bits of
// the first byte select the mode:
//
//	0b00: single byte,  n < 2^6
//	0b01: two bytes,    n < 2^14
//	0b10: four bytes,   n < 2^30
//	0b11: big integer, the upper six bits hold the byte count minus four
func appendCompact(b []byte, n uint64) []byte {
	switch {
	case n < 1<<6:
		return append(b, byte(n)<<2)
	case n < 1<<14:
		return append(b, byte(n<<2)|0b01, byte(n>>6))
	case n < 1<<30:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(n<<2)|0b10)
		return append(b, buf[:]...)
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	size := 8
	for buf[size-1] == 0 {
		size--
	}
	b = append(b, byte(size-4)<<2|0b11)
	return append(b, buf[:size]...)
}

// appendCompactBytes appends data prefixed with its compact length.
func appendCompactBytes(b []byte, data []byte) []byte {
	b = appendCompact(b, uint64(len(data)))
	return append(b, data...)
}
