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

package triehash

import (
	"github.com/PigCharid/triehash/triestream"
	"golang.org/x/sync/errgroup"
)

// builder drives node encoders over sorted, nibble-keyed entries.
type builder struct {
	newEncoder func() triestream.NodeEncoder
	hasher     triestream.Hasher
	parallel   bool // build the children of the next branch concurrently
}

// span is the range of entries below one branch slot.
type span struct {
	start, end int
}

// encode builds the node for input into a fresh encoder and finalizes it.
func (b *builder) encode(input []entry, cursor int) ([]byte, error) {
	enc := b.newEncoder()
	if err := b.build(enc, input, cursor); err != nil {
		return nil, err
	}
	return enc.Finalize()
}

// trampoline encodes a child node on its own and splices the result into
// the parent, which needs the finished child to pick inline or hash.
func (b *builder) trampoline(enc triestream.NodeEncoder, input []entry, cursor int) error {
	child, err := b.encode(input, cursor)
	if err != nil {
		return err
	}
	enc.AppendSubstream(child, b.hasher)
	return nil
}

// build describes the node holding input to enc. All entries share at least
// cursor nibbles, which an ancestor has already consumed.
func (b *builder) build(enc triestream.NodeEncoder, input []entry, cursor int) error {
	switch len(input) {
	case 0:
		enc.AppendEmptyData()
		return nil
	case 1:
		enc.AppendLeaf(input[0].key[cursor:], input[0].value)
		return nil
	}
	key := input[0].key

	// Extend the path if every key shares more than what has been consumed.
	// Shorter shared runs below the first divergence are found by the
	// children themselves.
	if shared := sharedPrefix(input); shared > cursor {
		enc.AppendExtension(key[cursor:shared])
		return b.trampoline(enc, input, shared)
	}
	enc.BeginBranch()

	slots := branchSlots(input, cursor)
	if b.parallel {
		if err := b.parallelSlots(enc, input, slots, cursor); err != nil {
			return err
		}
	} else {
		for _, s := range slots {
			if s.start == s.end {
				enc.AppendEmptyData()
				continue
			}
			if err := b.trampoline(enc, input[s.start:s.end], cursor+1); err != nil {
				return err
			}
		}
	}
	// A key ending right here owns the value slot.
	if len(key) == cursor {
		enc.AppendValue(input[0].value)
	} else {
		enc.AppendEmptyData()
	}
	return nil
}

// parallelSlots encodes the non-empty slots of a branch concurrently and
// splices them in nibble order. Nodes further down are built sequentially.
func (b *builder) parallelSlots(enc triestream.NodeEncoder, input []entry, slots [16]span, cursor int) error {
	var (
		children [16][]byte
		child    = &builder{newEncoder: b.newEncoder, hasher: b.hasher}
		g        errgroup.Group
	)
	for i, s := range slots {
		if s.start == s.end {
			continue
		}
		i, s := i, s
		g.Go(func() error {
			out, err := child.encode(input[s.start:s.end], cursor+1)
			children[i] = out
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, s := range slots {
		if s.start == s.end {
			enc.AppendEmptyData()
		} else {
			enc.AppendSubstream(children[i], b.hasher)
		}
	}
	return nil
}

// sharedPrefix returns the number of leading nibbles all keys in input have
// in common with the first one.
func sharedPrefix(input []entry) int {
	key := input[0].key
	shared := len(key)
	for _, e := range input[1:] {
		if n := prefixLen(key, e.key); n < shared {
			shared = n
		}
	}
	return shared
}

// branchSlots splits input by the nibble at cursor. A first key that ends at
// cursor is left out, it becomes the branch value. Since input is sorted,
// each slot is a contiguous run and the slots after the last run are empty.
func branchSlots(input []entry, cursor int) (slots [16]span) {
	begin := 0
	if len(input[0].key) == cursor {
		begin = 1
	}
	for i := 0; i < 16 && begin < len(input); i++ {
		end := begin
		for end < len(input) && input[end].key[cursor] == byte(i) {
			end++
		}
		slots[i] = span{begin, end}
		begin = end
	}
	return slots
}
