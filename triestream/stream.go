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

// Package triestream contains the node encodings a trie can be serialized with.
//
// A NodeEncoder receives the shape of exactly one trie node as a sequence of
// calls and turns it into bytes. Child nodes are encoded by their own encoder
// first and handed to the parent as finished buffers, so the parent can decide
// between embedding the child and referencing it by hash.
package triestream

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrFinalized is returned when an encoder is used after Finalize.
	ErrFinalized = errors.New("encoder already finalized")

	// ErrMalformedNode is returned by Finalize when the calls made on the
	// encoder do not describe a single complete node.
	ErrMalformedNode = errors.New("malformed trie node")

	// ErrUnknownEncoding is returned by ByName for unsupported encodings.
	ErrUnknownEncoding = errors.New("unknown node encoding")
)

// Hasher digests arbitrary data into a fixed size hash.
type Hasher interface {
	Hash(data []byte) common.Hash
}

// NodeEncoder serializes one trie node. Keys passed to AppendLeaf and
// AppendExtension are nibble sequences, one nibble per byte.
//
// A branch is opened with BeginBranch and followed by exactly 16 child slots
// (AppendEmptyData or AppendSubstream) and one value slot (AppendValue or
// AppendEmptyData). An extension is followed by exactly one AppendSubstream.
//
// Encoders are not reusable: Finalize returns the encoding and every later
// call fails with ErrFinalized.
type NodeEncoder interface {
	AppendEmptyData()
	AppendLeaf(key, value []byte)
	AppendExtension(key []byte)
	BeginBranch()
	AppendValue(value []byte)
	AppendSubstream(child []byte, hasher Hasher)
	Finalize() ([]byte, error)
}

// ByName returns the encoder constructor registered under name.
func ByName(name string) (func() NodeEncoder, error) {
	switch name {
	case "rlp":
		return func() NodeEncoder { return NewRLP() }, nil
	case "codec":
		return func() NodeEncoder { return NewCodec() }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

type nodeKind uint8

const (
	kindNone nodeKind = iota
	kindEmpty
	kindLeaf
	kindExtension
	kindBranch
)

// items is the number of slots that follow the opening call of a node.
func (k nodeKind) items() int {
	switch k {
	case kindExtension:
		return 1
	case kindBranch:
		return 17
	}
	return 0
}

func (k nodeKind) String() string {
	switch k {
	case kindEmpty:
		return "empty"
	case kindLeaf:
		return "leaf"
	case kindExtension:
		return "extension"
	case kindBranch:
		return "branch"
	}
	return "none"
}

// shape tracks the node described so far, so that encoders can report misuse
// through Finalize instead of producing a corrupt buffer.
type shape struct {
	kind  nodeKind
	items int
	err   error
}

func (s *shape) begin(k nodeKind) bool {
	if s.err != nil {
		return false
	}
	if s.kind != kindNone {
		s.err = fmt.Errorf("%w: %v opened inside %v", ErrMalformedNode, k, s.kind)
		return false
	}
	s.kind = k
	return true
}

func (s *shape) slot() bool {
	if s.err != nil {
		return false
	}
	if s.items >= s.kind.items() {
		s.err = fmt.Errorf("%w: too many items for %v", ErrMalformedNode, s.kind)
		return false
	}
	s.items++
	return true
}

// empty records empty data, which is either a whole node or a slot.
func (s *shape) empty() bool {
	if s.err == nil && s.kind == kindNone {
		return s.begin(kindEmpty)
	}
	return s.slot()
}

// value records a branch value, which is only valid in the 17th slot.
func (s *shape) value() bool {
	if s.err == nil && (s.kind != kindBranch || s.items != 16) {
		s.err = fmt.Errorf("%w: value outside of branch value slot", ErrMalformedNode)
		return false
	}
	return s.slot()
}

func (s *shape) finish() error {
	if s.err != nil {
		return s.err
	}
	if s.kind == kindNone || s.items != s.kind.items() {
		s.err = fmt.Errorf("%w: %v with %d of %d items", ErrMalformedNode, s.kind, s.items, s.kind.items())
		return s.err
	}
	s.err = ErrFinalized
	return nil
}
