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

// Node headers of the codec encoding. The top two bits select the variant,
// bit 4 marks an odd partial key whose first nibble sits in the low half of
// the header.
const (
	codecEmpty     = 0x00
	codecBranch    = 0x40 // 0b01_00_0000
	codecExtension = 0x80 // 0b10_00_0000
	codecLeaf      = 0xa0 // 0b10_10_0000
	codecOdd       = 0x10
)

// Codec is a compact, variant-tagged node encoding. Byte strings are prefixed
// with their SCALE compact length and children are always embedded.
type Codec struct {
	shape
	buf []byte
}

// NewCodec returns an encoder for a single node.
func NewCodec() *Codec {
	return &Codec{buf: make([]byte, 0, 64)}
}

func (e *Codec) AppendEmptyData() {
	if e.empty() {
		e.buf = append(e.buf, codecEmpty)
	}
}

func (e *Codec) AppendLeaf(key, value []byte) {
	if e.begin(kindLeaf) {
		e.appendKey(codecLeaf, key)
		e.buf = appendCompactBytes(e.buf, value)
	}
}

func (e *Codec) AppendExtension(key []byte) {
	if e.begin(kindExtension) {
		e.appendKey(codecExtension, key)
	}
}

func (e *Codec) BeginBranch() {
	if e.begin(kindBranch) {
		e.buf = append(e.buf, codecBranch)
	}
}

func (e *Codec) AppendValue(value []byte) {
	if e.value() {
		e.buf = appendCompactBytes(e.buf, value)
	}
}

// AppendSubstream embeds child behind its length. The hasher is not needed
// since nothing is referenced by hash.
func (e *Codec) AppendSubstream(child []byte, _ Hasher) {
	if e.slot() {
		e.buf = appendCompactBytes(e.buf, child)
	}
}

func (e *Codec) Finalize() ([]byte, error) {
	if err := e.finish(); err != nil {
		return nil, err
	}
	return e.buf, nil
}

func (e *Codec) appendKey(header byte, key []byte) {
	if len(key)&1 == 1 {
		header |= codecOdd | key[0]
		key = key[1:]
	}
	packed := make([]byte, len(key)/2)
	packNibbles(key, packed)
	e.buf = append(e.buf, header)
	e.buf = appendCompactBytes(e.buf, packed)
}
