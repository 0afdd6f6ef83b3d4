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

// Partial keys reach the encoders as nibbles, one per byte. Both encodings
// store them packed two to a byte behind a flag nibble:
//
// HEX-PREFIX encoding is defined by the Ethereum Yellow Paper. The high nibble
// of the first byte holds the flags; the lowest bit encodes the oddness of the
// length and the second-lowest whether the node is a leaf. The low nibble of
// the first byte is zero for an even number of nibbles and the first nibble
// for an odd number. All remaining nibbles (now an even number) fit into the
// remaining bytes.
//
// The codec encoding uses the same odd-length trick with its own header bits,
// see codec.go.

// hexPrefix encodes a nibble key with the hex-prefix flag byte.
func hexPrefix(nibbles []byte, leaf bool) []byte {
	buf := make([]byte, len(nibbles)/2+1)
	if leaf {
		buf[0] = 1 << 5
	}
	if len(nibbles)&1 == 1 {
		buf[0] |= 1 << 4     // odd flag
		buf[0] |= nibbles[0] // first nibble is contained in the first byte
		nibbles = nibbles[1:]
	}
	packNibbles(nibbles, buf[1:])
	return buf
}

// packNibbles merges pairs of nibbles into bytes. len(nibbles) must be even
// and bytes must hold at least len(nibbles)/2 bytes.
func packNibbles(nibbles []byte, bytes []byte) {
	for bi, ni := 0, 0; ni < len(nibbles); bi, ni = bi+1, ni+2 {
		bytes[bi] = nibbles[ni]<<4 | nibbles[ni+1]
	}
}
