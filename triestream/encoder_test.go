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
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keccak struct{}

func (keccak) Hash(data []byte) common.Hash { return crypto.Keccak256Hash(data) }

func TestHexPrefix(t *testing.T) {
	tests := []struct {
		nibbles []byte
		leaf    bool
		want    []byte
	}{
		{[]byte{}, false, []byte{0x00}},
		{[]byte{}, true, []byte{0x20}},
		{[]byte{1, 2, 3, 4, 5}, false, []byte{0x11, 0x23, 0x45}},
		{[]byte{0, 1, 2, 3, 4, 5}, false, []byte{0x00, 0x01, 0x23, 0x45}},
		{[]byte{15, 1, 12, 11, 8}, true, []byte{0x3f, 0x1c, 0xb8}},
		{[]byte{0, 15, 1, 12, 11, 8}, true, []byte{0x20, 0x0f, 0x1c, 0xb8}},
	}
	for i, test := range tests {
		if got := hexPrefix(test.nibbles, test.leaf); !bytes.Equal(got, test.want) {
			t.Errorf("test %d: hexPrefix(%x, %v) = %x, want %x", i, test.nibbles, test.leaf, got, test.want)
		}
	}
}

func TestAppendCompact(t *testing.T) {
	tests := []struct {
		n    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x04}},
		{63, []byte{0xfc}},
		{64, []byte{0x01, 0x01}},
		{16383, []byte{0xfd, 0xff}},
		{16384, []byte{0x02, 0x00, 0x01, 0x00}},
		{1<<30 - 1, []byte{0xfe, 0xff, 0xff, 0xff}},
		{1 << 30, []byte{0x03, 0x00, 0x00, 0x00, 0x40}},
		{1 << 32, []byte{0x07, 0x00, 0x00, 0x00, 0x00, 0x01}},
		{1<<64 - 1, []byte{0x13, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}
	for _, test := range tests {
		if got := appendCompact(nil, test.n); !bytes.Equal(got, test.want) {
			t.Errorf("appendCompact(%d) = %x, want %x", test.n, got, test.want)
		}
	}
	assert.Equal(t, []byte{0xaa, 0x08, 1, 2}, appendCompactBytes([]byte{0xaa}, []byte{1, 2}))
}

// emptyBranch opens a branch and fills all sixteen slots with empty data.
func emptyBranch(enc NodeEncoder) {
	enc.BeginBranch()
	for i := 0; i < 16; i++ {
		enc.AppendEmptyData()
	}
}

func TestRLPEncoder(t *testing.T) {
	leaf := []byte{0xc4, 0x82, 0x20, 0x13, 0x14}
	long := bytes.Repeat([]byte{0xc1}, InlineLimit)
	hash := crypto.Keccak256(long)

	tests := []struct {
		name  string
		build func(NodeEncoder)
		want  []byte
	}{
		{"empty", func(e NodeEncoder) { e.AppendEmptyData() }, []byte{0x80}},
		{"leaf", func(e NodeEncoder) { e.AppendLeaf([]byte{1, 3}, []byte{0x14}) }, leaf},
		{
			"inline child",
			func(e NodeEncoder) {
				e.AppendExtension([]byte{1})
				e.AppendSubstream(leaf, keccak{})
			},
			append([]byte{0xc6, 0x11}, leaf...),
		},
		{
			"hashed child",
			func(e NodeEncoder) {
				e.AppendExtension([]byte{1})
				e.AppendSubstream(long, keccak{})
			},
			append([]byte{0xc0 + 34, 0x11, 0x80 + 32}, hash...),
		},
		{
			"branch value",
			func(e NodeEncoder) {
				emptyBranch(e)
				e.AppendValue([]byte("v"))
			},
			append(append([]byte{0xc0 + 17}, bytes.Repeat([]byte{0x80}, 16)...), 'v'),
		},
	}
	for _, test := range tests {
		enc := NewRLP()
		test.build(enc)
		got, err := enc.Finalize()
		require.NoError(t, err, test.name)
		if !bytes.Equal(got, test.want) {
			t.Errorf("%s: encoding mismatch\ngot  %x\nwant %x", test.name, got, test.want)
		}
	}
}

func TestCodecEncoder(t *testing.T) {
	long := bytes.Repeat([]byte{0x01}, 40)

	tests := []struct {
		name  string
		build func(NodeEncoder)
		want  []byte
	}{
		{"empty", func(e NodeEncoder) { e.AppendEmptyData() }, []byte{0x00}},
		{"empty leaf", func(e NodeEncoder) { e.AppendLeaf(nil, nil) }, []byte{0xa0, 0x00, 0x00}},
		{"odd leaf", func(e NodeEncoder) { e.AppendLeaf([]byte{0xd, 3, 0}, []byte{7}) }, []byte{0xbd, 0x04, 0x30, 0x04, 0x07}},
		{
			"odd extension",
			func(e NodeEncoder) {
				e.AppendExtension([]byte{0xd, 3, 0})
				e.AppendSubstream([]byte{0x00}, nil)
			},
			[]byte{0x9d, 0x04, 0x30, 0x04, 0x00},
		},
		{
			"children are never hashed",
			func(e NodeEncoder) {
				e.AppendExtension([]byte{1, 2})
				e.AppendSubstream(long, keccak{})
			},
			append([]byte{0x80, 0x04, 0x12, 0xa0}, long...),
		},
		{
			"branch value",
			func(e NodeEncoder) {
				emptyBranch(e)
				e.AppendValue([]byte("v"))
			},
			append(append([]byte{0x40}, make([]byte, 16)...), 0x04, 'v'),
		},
	}
	for _, test := range tests {
		enc := NewCodec()
		test.build(enc)
		got, err := enc.Finalize()
		require.NoError(t, err, test.name)
		if !bytes.Equal(got, test.want) {
			t.Errorf("%s: encoding mismatch\ngot  %x\nwant %x", test.name, got, test.want)
		}
	}
}

func TestMalformedNodes(t *testing.T) {
	tests := []struct {
		name  string
		build func(NodeEncoder)
	}{
		{"nothing", func(e NodeEncoder) {}},
		{"two leaves", func(e NodeEncoder) {
			e.AppendLeaf([]byte{1}, []byte{1})
			e.AppendLeaf([]byte{2}, []byte{2})
		}},
		{"leaf after empty", func(e NodeEncoder) {
			e.AppendEmptyData()
			e.AppendLeaf([]byte{1}, []byte{1})
		}},
		{"extension without child", func(e NodeEncoder) { e.AppendExtension([]byte{1}) }},
		{"extension with two children", func(e NodeEncoder) {
			e.AppendExtension([]byte{1})
			e.AppendSubstream([]byte{0x80}, keccak{})
			e.AppendSubstream([]byte{0x80}, keccak{})
		}},
		{"short branch", func(e NodeEncoder) {
			e.BeginBranch()
			e.AppendEmptyData()
			e.AppendEmptyData()
		}},
		{"value in child slot", func(e NodeEncoder) {
			e.BeginBranch()
			e.AppendValue([]byte{1})
		}},
		{"value outside branch", func(e NodeEncoder) { e.AppendValue([]byte{1}) }},
		{"branch after leaf", func(e NodeEncoder) {
			e.AppendLeaf(nil, nil)
			emptyBranch(e)
			e.AppendEmptyData()
		}},
		{"eighteen branch items", func(e NodeEncoder) {
			emptyBranch(e)
			e.AppendValue(nil)
			e.AppendEmptyData()
		}},
	}
	for _, name := range []string{"rlp", "codec"} {
		newEncoder, err := ByName(name)
		require.NoError(t, err)
		for _, test := range tests {
			enc := newEncoder()
			test.build(enc)
			_, err := enc.Finalize()
			assert.ErrorIs(t, err, ErrMalformedNode, "%s: %s", name, test.name)

			// The failure sticks.
			enc.AppendEmptyData()
			_, err = enc.Finalize()
			assert.ErrorIs(t, err, ErrMalformedNode, "%s: %s", name, test.name)
		}
	}
}

func TestFinalizeTwice(t *testing.T) {
	for _, enc := range []NodeEncoder{NewRLP(), NewCodec()} {
		enc.AppendLeaf([]byte{1}, []byte{2})
		_, err := enc.Finalize()
		require.NoError(t, err)

		_, err = enc.Finalize()
		assert.ErrorIs(t, err, ErrFinalized)

		enc.AppendEmptyData()
		_, err = enc.Finalize()
		assert.ErrorIs(t, err, ErrFinalized)
	}
}

func TestByName(t *testing.T) {
	newEncoder, err := ByName("rlp")
	require.NoError(t, err)
	assert.IsType(t, &RLP{}, newEncoder())

	newEncoder, err = ByName("codec")
	require.NoError(t, err)
	assert.IsType(t, &Codec{}, newEncoder())

	_, err = ByName("ssz")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestStatsWrap(t *testing.T) {
	var stats Stats
	newEncoder := stats.Wrap(func() NodeEncoder { return NewRLP() })

	child := newEncoder()
	child.AppendLeaf([]byte{1, 3}, []byte{0x14})
	leaf, err := child.Finalize()
	require.NoError(t, err)

	top := newEncoder()
	top.BeginBranch()
	for i := 0; i < 16; i++ {
		if i == 4 {
			top.AppendSubstream(leaf, keccak{})
			continue
		}
		top.AppendEmptyData()
	}
	top.AppendValue([]byte("v"))
	enc, err := top.Finalize()
	require.NoError(t, err)

	assert.Equal(t, uint64(1), stats.Leaves)
	assert.Equal(t, uint64(1), stats.Branches)
	assert.Equal(t, uint64(0), stats.Extensions)
	assert.Equal(t, uint64(2), stats.Nodes())
	assert.Equal(t, uint64(15), stats.Empty)
	assert.Equal(t, uint64(1), stats.Values)
	assert.Equal(t, uint64(1), stats.Substreams)
	assert.Equal(t, uint64(len(leaf)+len(enc)), stats.Bytes)

	// Failed nodes are not counted.
	bad := newEncoder()
	bad.AppendExtension([]byte{1})
	_, err = bad.Finalize()
	assert.ErrorIs(t, err, ErrMalformedNode)
	assert.Equal(t, uint64(len(leaf)+len(enc)), stats.Bytes)
}
