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

import "github.com/PigCharid/triehash/triestream"

// frame is an extension or branch node whose children are still being
// encoded by encodeIterative.
type frame struct {
	enc    triestream.NodeEncoder
	input  []entry
	cursor int

	extension bool
	done      bool     // extension: child handed out
	slots     [16]span // branch: entries per slot
	next      int      // branch: next slot to fill
}

// open describes the head of the node holding input. It returns nil when the
// node is complete, i.e. empty or a leaf.
func (b *builder) open(enc triestream.NodeEncoder, input []entry, cursor int) *frame {
	switch len(input) {
	case 0:
		enc.AppendEmptyData()
		return nil
	case 1:
		enc.AppendLeaf(input[0].key[cursor:], input[0].value)
		return nil
	}
	if shared := sharedPrefix(input); shared > cursor {
		enc.AppendExtension(input[0].key[cursor:shared])
		return &frame{enc: enc, input: input, cursor: shared, extension: true}
	}
	enc.BeginBranch()
	return &frame{enc: enc, input: input, cursor: cursor, slots: branchSlots(input, cursor)}
}

// child returns the input and cursor of the next child to encode. Empty
// branch slots are filled along the way. Once all children are handed out
// it closes the node and reports false.
func (f *frame) child() ([]entry, int, bool) {
	if f.extension {
		if f.done {
			return nil, 0, false
		}
		f.done = true
		return f.input, f.cursor, true
	}
	for f.next < 16 {
		s := f.slots[f.next]
		f.next++
		if s.start == s.end {
			f.enc.AppendEmptyData()
			continue
		}
		return f.input[s.start:s.end], f.cursor + 1, true
	}
	if len(f.input[0].key) == f.cursor {
		f.enc.AppendValue(f.input[0].value)
	} else {
		f.enc.AppendEmptyData()
	}
	return nil, 0, false
}

// encodeIterative is encode without recursion. The encoders see exactly the
// same calls in the same order.
func (b *builder) encodeIterative(input []entry, cursor int) ([]byte, error) {
	enc := b.newEncoder()
	top := b.open(enc, input, cursor)
	if top == nil {
		return enc.Finalize()
	}
	stack := []*frame{top}
	for {
		f := stack[len(stack)-1]
		if in, cur, ok := f.child(); ok {
			enc := b.newEncoder()
			if cf := b.open(enc, in, cur); cf != nil {
				stack = append(stack, cf)
				continue
			}
			out, err := enc.Finalize()
			if err != nil {
				return nil, err
			}
			f.enc.AppendSubstream(out, b.hasher)
			continue
		}
		out, err := f.enc.Finalize()
		if err != nil {
			return nil, err
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return out, nil
		}
		stack[len(stack)-1].enc.AppendSubstream(out, b.hasher)
	}
}
