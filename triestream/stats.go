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

import "sync/atomic"

// Stats counts the nodes produced through wrapped encoders. It is safe for
// concurrent use.
type Stats struct {
	Leaves     uint64
	Extensions uint64
	Branches   uint64
	Empty      uint64 // empty nodes and empty slots
	Values     uint64 // branch values
	Substreams uint64
	Bytes      uint64 // total size of all finalized nodes
}

// Wrap returns a constructor whose encoders report to s.
func (s *Stats) Wrap(newEncoder func() NodeEncoder) func() NodeEncoder {
	return func() NodeEncoder {
		return &statsEncoder{NodeEncoder: newEncoder(), stats: s}
	}
}

// Nodes returns the number of non-empty nodes.
func (s *Stats) Nodes() uint64 {
	return atomic.LoadUint64(&s.Leaves) + atomic.LoadUint64(&s.Extensions) + atomic.LoadUint64(&s.Branches)
}

type statsEncoder struct {
	NodeEncoder
	stats *Stats
}

func (e *statsEncoder) AppendEmptyData() {
	atomic.AddUint64(&e.stats.Empty, 1)
	e.NodeEncoder.AppendEmptyData()
}

func (e *statsEncoder) AppendLeaf(key, value []byte) {
	atomic.AddUint64(&e.stats.Leaves, 1)
	e.NodeEncoder.AppendLeaf(key, value)
}

func (e *statsEncoder) AppendExtension(key []byte) {
	atomic.AddUint64(&e.stats.Extensions, 1)
	e.NodeEncoder.AppendExtension(key)
}

func (e *statsEncoder) BeginBranch() {
	atomic.AddUint64(&e.stats.Branches, 1)
	e.NodeEncoder.BeginBranch()
}

func (e *statsEncoder) AppendValue(value []byte) {
	atomic.AddUint64(&e.stats.Values, 1)
	e.NodeEncoder.AppendValue(value)
}

func (e *statsEncoder) AppendSubstream(child []byte, hasher Hasher) {
	atomic.AddUint64(&e.stats.Substreams, 1)
	e.NodeEncoder.AppendSubstream(child, hasher)
}

func (e *statsEncoder) Finalize() ([]byte, error) {
	enc, err := e.NodeEncoder.Finalize()
	if err == nil {
		atomic.AddUint64(&e.stats.Bytes, uint64(len(enc)))
	}
	return enc, err
}
