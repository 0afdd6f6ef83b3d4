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

import (
	"github.com/ethereum/go-ethereum/rlp"
)

// InlineLimit is the size below which an RLP child node is stored inside its
// parent instead of being referenced by hash.
const InlineLimit = 32

// RLP encodes nodes the way the Ethereum state trie does:
//
//	leaf:      [hexprefix(key, true), value]
//	extension: [hexprefix(key, false), child]
//	branch:    [child0, ..., child15, value]
//
// Empty slots are the empty string.
type RLP struct {
	shape
	buf  rlp.EncoderBuffer
	list int
}

// NewRLP returns an encoder for a single node.
func NewRLP() *RLP {
	return &RLP{buf: rlp.NewEncoderBuffer(nil)}
}

func (e *RLP) AppendEmptyData() {
	if e.empty() {
		e.buf.WriteBytes(nil)
	}
}

func (e *RLP) AppendLeaf(key, value []byte) {
	if !e.begin(kindLeaf) {
		return
	}
	list := e.buf.List()
	e.buf.WriteBytes(hexPrefix(key, true))
	e.buf.WriteBytes(value)
	e.buf.ListEnd(list)
}

func (e *RLP) AppendExtension(key []byte) {
	if !e.begin(kindExtension) {
		return
	}
	e.list = e.buf.List()
	e.buf.WriteBytes(hexPrefix(key, false))
}

func (e *RLP) BeginBranch() {
	if e.begin(kindBranch) {
		e.list = e.buf.List()
	}
}

func (e *RLP) AppendValue(value []byte) {
	if e.value() {
		e.buf.WriteBytes(value)
	}
}

// AppendSubstream embeds child as raw RLP when it is shorter than
// InlineLimit, otherwise it stores the hash of child.
func (e *RLP) AppendSubstream(child []byte, hasher Hasher) {
	if !e.slot() {
		return
	}
	if len(child) < InlineLimit {
		e.buf.Write(child)
		return
	}
	hash := hasher.Hash(child)
	e.buf.WriteBytes(hash[:])
}

func (e *RLP) Finalize() ([]byte, error) {
	if err := e.finish(); err != nil {
		return nil, err
	}
	if e.kind == kindExtension || e.kind == kindBranch {
		e.buf.ListEnd(e.list)
	}
	enc := e.buf.ToBytes()
	e.buf.Flush()
	return enc, nil
}
