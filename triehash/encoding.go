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

	"github.com/emirpasic/gods/maps/treemap"
)

// Pair is a single key/value input of a trie.
type Pair struct {
	Key   []byte
	Value []byte
}

// PairsFromStrings builds pairs from alternating keys and values.
func PairsFromStrings(kv ...string) []Pair {
	pairs := make([]Pair, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		pairs = append(pairs, Pair{Key: []byte(kv[i]), Value: []byte(kv[i+1])})
	}
	return pairs
}

// entry is a normalized pair whose key has been expanded to nibbles. The key
// is a view into an arena shared by all entries of one build.
type entry struct {
	key   []byte
	value []byte
}

func compareKeys(a, b interface{}) int {
	return bytes.Compare(a.([]byte), b.([]byte))
}

// normalize sorts the input by key and drops duplicate keys. Put replaces
// the value of an existing key, so the last occurrence wins.
func normalize(input []Pair) []Pair {
	m := treemap.NewWith(compareKeys)
	for _, p := range input {
		m.Put(p.Key, p.Value)
	}
	pairs := make([]Pair, 0, m.Size())
	it := m.Iterator()
	for it.Next() {
		pairs = append(pairs, Pair{Key: it.Key().([]byte), Value: it.Value().([]byte)})
	}
	return pairs
}

// expand converts sorted pairs into entries keyed by nibbles. All nibbles live
// in one allocation; each key slices its own range out of it.
func expand(pairs []Pair) []entry {
	size := 0
	for _, p := range pairs {
		size += len(p.Key)
	}
	var (
		nibbles = make([]byte, 0, size*2)
		entries = make([]entry, len(pairs))
	)
	for i, p := range pairs {
		start := len(nibbles)
		nibbles = keybytesToNibbles(nibbles, p.Key)
		entries[i] = entry{key: nibbles[start:len(nibbles):len(nibbles)], value: p.Value}
	}
	return entries
}

// keybytesToNibbles appends the nibbles of key to dst, high nibble first.
func keybytesToNibbles(dst []byte, key []byte) []byte {
	for _, b := range key {
		dst = append(dst, b/16, b%16)
	}
	return dst
}

// prefixLen returns the length of the common prefix of a and b.
func prefixLen(a, b []byte) int {
	var i, length = 0, len(a)
	if len(b) < length {
		length = len(b)
	}
	for ; i < length; i++ {
		if a[i] != b[i] {
			break
		}
	}
	return i
}
