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
	"errors"

	"github.com/PigCharid/triehash/hashing"
	"github.com/PigCharid/triehash/triestream"
)

var (
	errNoEncoder      = errors.New("triehash: config has no node encoder")
	errNoHasher       = errors.New("triehash: config has no hasher")
	errExclusiveModes = errors.New("triehash: parallel and iterative builds are exclusive")
)

// Config selects the node encoding and hash function a root is derived with.
type Config struct {
	NewEncoder func() triestream.NodeEncoder // constructor, called once per node
	Hasher     triestream.Hasher

	// Parallel builds the 16 children of the topmost branch concurrently.
	Parallel bool

	// Iterative replaces recursion by an explicit stack, so that key length
	// is not bounded by the goroutine stack.
	Iterative bool
}

// EthereumConfig returns the configuration of the Ethereum state trie: RLP
// nodes digested with Keccak-256.
func EthereumConfig() *Config {
	return &Config{
		NewEncoder: func() triestream.NodeEncoder { return triestream.NewRLP() },
		Hasher:     hashing.Keccak256{},
	}
}

// CodecConfig returns the compact codec encoding digested with BLAKE2b-256.
func CodecConfig() *Config {
	return &Config{
		NewEncoder: func() triestream.NodeEncoder { return triestream.NewCodec() },
		Hasher:     hashing.Blake2b256{},
	}
}

func (c *Config) validate() error {
	switch {
	case c.NewEncoder == nil:
		return errNoEncoder
	case c.Hasher == nil:
		return errNoHasher
	case c.Parallel && c.Iterative:
		return errExclusiveModes
	}
	return nil
}
