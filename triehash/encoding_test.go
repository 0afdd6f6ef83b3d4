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
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixLen(t *testing.T) {
	tests := []struct {
		a, b []byte
		want int
	}{
		{[]byte{1, 2, 3, 4, 5, 6}, []byte{4, 2, 3, 4, 5, 6}, 0},
		{[]byte{1, 2, 3, 3, 5}, []byte{1, 2, 3}, 3},
		{[]byte{1, 2, 3, 4, 5, 6}, []byte{1, 2, 3, 4, 5, 6}, 6},
		{nil, []byte{1}, 0},
		{[]byte{7, 7}, []byte{7, 8}, 1},
	}
	for i, test := range tests {
		if got := prefixLen(test.a, test.b); got != test.want {
			t.Errorf("test %d: prefixLen(%v, %v) = %d, want %d", i, test.a, test.b, got, test.want)
		}
		if got := prefixLen(test.b, test.a); got != test.want {
			t.Errorf("test %d: prefixLen not symmetric: got %d, want %d", i, got, test.want)
		}
	}
}

func TestNormalizeSortsAndLastValueWins(t *testing.T) {
	input := []Pair{
		{Key: []byte("dog"), Value: []byte("puppy")},
		{Key: []byte("cat"), Value: []byte("kitten")},
		{Key: []byte("dog"), Value: []byte("hound")},
		{Key: []byte("do"), Value: []byte("verb")},
		{Key: nil, Value: []byte("root")},
	}
	want := []Pair{
		{Key: nil, Value: []byte("root")},
		{Key: []byte("cat"), Value: []byte("kitten")},
		{Key: []byte("do"), Value: []byte("verb")},
		{Key: []byte("dog"), Value: []byte("hound")},
	}
	got := normalize(input)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, bytes.Equal(want[i].Key, got[i].Key), "pair %d: key %q, want %q", i, got[i].Key, want[i].Key)
		assert.Equal(t, want[i].Value, got[i].Value, "pair %d", i)
	}
	assert.Empty(t, normalize(nil))
}

func TestNormalizeRandomOrder(t *testing.T) {
	input := make([]Pair, 200)
	for i := range input {
		key := make([]byte, 1+rand.Intn(4))
		rand.Read(key)
		input[i] = Pair{Key: key, Value: []byte{byte(i)}}
	}
	got := normalize(input)
	for i := 1; i < len(got); i++ {
		if bytes.Compare(got[i-1].Key, got[i].Key) >= 0 {
			t.Fatalf("keys not strictly ascending at %d: %x >= %x", i, got[i-1].Key, got[i].Key)
		}
	}
}

func TestExpand(t *testing.T) {
	entries := expand([]Pair{
		{Key: []byte{0x12, 0xab}, Value: []byte{1}},
		{Key: nil, Value: []byte{2}},
		{Key: []byte{0xf0}, Value: []byte{3}},
	})
	require.Len(t, entries, 3)
	assert.Equal(t, []byte{1, 2, 0xa, 0xb}, entries[0].key)
	assert.Empty(t, entries[1].key)
	assert.Equal(t, []byte{0xf, 0}, entries[2].key)
	assert.Equal(t, []byte{3}, entries[2].value)

	// Keys are views into one arena and must not grow into their neighbours.
	assert.Equal(t, len(entries[0].key), cap(entries[0].key))
	assert.Equal(t, len(entries[2].key), cap(entries[2].key))
}

func TestKeybytesToNibbles(t *testing.T) {
	got := keybytesToNibbles([]byte{9}, []byte{0x7f, 0x00, 0xc4})
	assert.Equal(t, []byte{9, 7, 0xf, 0, 0, 0xc, 4}, got)
}
