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

// Package hashing provides the 32-byte hash functions tries are digested with.
package hashing

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"

	"github.com/PigCharid/triehash/triestream"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// ErrUnknownHasher is returned by ByName for unsupported hash functions.
var ErrUnknownHasher = errors.New("unknown hash function")

// keccakPool holds keccak states, they are costly to set up.
var keccakPool = sync.Pool{
	New: func() interface{} {
		return sha3.NewLegacyKeccak256().(crypto.KeccakState)
	},
}

// Keccak256 is the legacy (pre-standard) Keccak used by Ethereum.
type Keccak256 struct{}

func (Keccak256) Hash(data []byte) (h common.Hash) {
	sha := keccakPool.Get().(crypto.KeccakState)
	sha.Reset()
	sha.Write(data)
	sha.Read(h[:])
	keccakPool.Put(sha)
	return h
}

// Blake2b256 is BLAKE2b with a 32 byte digest, as used by Substrate tries.
type Blake2b256 struct{}

func (Blake2b256) Hash(data []byte) common.Hash {
	return common.Hash(blake2b.Sum256(data))
}

// Sha256 is SHA2-256.
type Sha256 struct{}

func (Sha256) Hash(data []byte) common.Hash {
	return common.Hash(sha256.Sum256(data))
}

// ByName returns the hasher registered under name.
func ByName(name string) (triestream.Hasher, error) {
	switch name {
	case "keccak256", "keccak":
		return Keccak256{}, nil
	case "blake2b256", "blake2b":
		return Blake2b256{}, nil
	case "sha256":
		return Sha256{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
}
