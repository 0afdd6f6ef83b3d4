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

// Package triehash computes Merkle Patricia Trie roots of complete key/value
// sets without building a trie in memory.
//
// The pairs are sorted, their keys expanded to nibbles, and the trie shape is
// derived recursively: a single pair becomes a leaf, pairs sharing more
// nibbles than already consumed get an extension, and anything else a 16-way
// branch. Each decision is passed to a node encoder, and the root is the hash
// of the topmost encoded node.
package triehash

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
)

// TrieRoot returns the root hash of the trie holding input. The order of the
// pairs does not matter; for duplicate keys the last value is used.
func TrieRoot(cfg *Config, input []Pair) (common.Hash, error) {
	enc, err := UnhashedTrie(cfg, input)
	if err != nil {
		return common.Hash{}, err
	}
	return cfg.Hasher.Hash(enc), nil
}

// SecureTrieRoot is TrieRoot with every key replaced by its hash, which keeps
// callers from shaping the trie through their choice of keys. Values are
// stored as they are.
func SecureTrieRoot(cfg *Config, input []Pair) (common.Hash, error) {
	if err := cfg.validate(); err != nil {
		return common.Hash{}, err
	}
	hashed := make([]Pair, len(input))
	for i, p := range input {
		key := cfg.Hasher.Hash(p.Key)
		hashed[i] = Pair{Key: key[:], Value: p.Value}
	}
	return TrieRoot(cfg, hashed)
}

// OrderedTrieRoot returns the root of the trie mapping the RLP encoded index
// of each value to the value, as used for transaction and receipt tries.
func OrderedTrieRoot(cfg *Config, values [][]byte) (common.Hash, error) {
	input := make([]Pair, len(values))
	for i, v := range values {
		input[i] = Pair{Key: rlp.AppendUint64(nil, uint64(i)), Value: v}
	}
	return TrieRoot(cfg, input)
}

// UnhashedTrie returns the encoding of the topmost trie node, the data
// TrieRoot hashes.
func UnhashedTrie(cfg *Config, input []Pair) ([]byte, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	var (
		start   = time.Now()
		entries = expand(normalize(input))
		b       = &builder{newEncoder: cfg.NewEncoder, hasher: cfg.Hasher, parallel: cfg.Parallel}
		enc     []byte
		err     error
	)
	if cfg.Iterative {
		enc, err = b.encodeIterative(entries, 0)
	} else {
		enc, err = b.encode(entries, 0)
	}
	if err != nil {
		return nil, err
	}
	log.Trace("Encoded trie", "pairs", len(input), "keys", len(entries), "size", len(enc), "elapsed", common.PrettyDuration(time.Since(start)))
	return enc, nil
}
