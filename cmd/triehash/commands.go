// Copyright 2022 The triehash Authors
// This file is part of the triehash tool.
//
// The triehash tool is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The triehash tool is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with the triehash tool. If not, see <http://www.gnu.org/licenses/>.


package main

import (
	"fmt"
	"os"
	"time"

	"github.com/PigCharid/triehash/triehash"
	"github.com/PigCharid/triehash/triestream"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var (
	rootCommand = &cli.Command{
		Name:      "root",
		Usage:     "Compute the root of a key/value trie",
		ArgsUsage: "[<key>=<value> ...]",
		Action:    trieRoot,
		Flags:     append([]cli.Flag{inputFlag}, configFlags...),
		Description: `
triehash root doe=reindeer dog=puppy dogglesworth=cat
Keys and values prefixed with 0x are hex decoded. With --input, pairs are read
from the file instead, one whitespace separated key and value per line.
`,
	}
	orderedCommand = &cli.Command{
		Name:      "ordered",
		Usage:     "Compute the root of a trie keyed by value index",
		ArgsUsage: "[<value> ...]",
		Action:    orderedRoot,
		Flags:     append([]cli.Flag{inputFlag}, configFlags...),
		Description: `
The values are keyed by the RLP encoding of their position, as in the
transaction and receipt tries. With --input, values are read one per line.
`,
	}
	inspectCommand = &cli.Command{
		Name:      "inspect",
		Usage:     "Show the node composition of a key/value trie",
		ArgsUsage: "[<key>=<value> ...]",
		Action:    inspectTrie,
		Flags:     append([]cli.Flag{inputFlag}, configFlags...),
	}
)

// setup loads the configuration and the input pairs of a command.
func setup(ctx *cli.Context) (*triehash.Config, triehashConfig, []triehash.Pair, error) {
	conf, err := makeConfig(ctx)
	if err != nil {
		return nil, conf, nil, err
	}
	cfg, err := conf.build()
	if err != nil {
		return nil, conf, nil, err
	}
	pairs, err := inputPairs(ctx)
	if err != nil {
		return nil, conf, nil, err
	}
	return cfg, conf, pairs, nil
}

func computeRoot(cfg *triehash.Config, secure bool, pairs []triehash.Pair) (common.Hash, error) {
	if secure {
		return triehash.SecureTrieRoot(cfg, pairs)
	}
	return triehash.TrieRoot(cfg, pairs)
}

func trieRoot(ctx *cli.Context) error {
	cfg, conf, pairs, err := setup(ctx)
	if err != nil {
		return err
	}
	start := time.Now()
	root, err := computeRoot(cfg, conf.Secure, pairs)
	if err != nil {
		return err
	}
	log.Info("Computed trie root", "pairs", len(pairs), "encoding", conf.Encoding, "hash", conf.Hash,
		"secure", conf.Secure, "elapsed", common.PrettyDuration(time.Since(start)))
	fmt.Println(root.Hex())
	return nil
}

func orderedRoot(ctx *cli.Context) error {
	conf, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	if conf.Secure {
		log.Warn("Ordered tries are never secure, ignoring flag")
	}
	cfg, err := conf.build()
	if err != nil {
		return err
	}
	values, err := inputValues(ctx)
	if err != nil {
		return err
	}
	start := time.Now()
	root, err := triehash.OrderedTrieRoot(cfg, values)
	if err != nil {
		return err
	}
	log.Info("Computed ordered trie root", "values", len(values), "elapsed", common.PrettyDuration(time.Since(start)))
	fmt.Println(root.Hex())
	return nil
}

func inspectTrie(ctx *cli.Context) error {
	cfg, conf, pairs, err := setup(ctx)
	if err != nil {
		return err
	}
	var stats triestream.Stats
	cfg.NewEncoder = stats.Wrap(cfg.NewEncoder)

	root, err := computeRoot(cfg, conf.Secure, pairs)
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.AppendBulk(statsTable(root, &stats))
	table.Render()
	return nil
}

func statsTable(root common.Hash, stats *triestream.Stats) [][]string {
	return [][]string{
		{"Root", root.Hex()},
		{"Leaves", fmt.Sprint(stats.Leaves)},
		{"Extensions", fmt.Sprint(stats.Extensions)},
		{"Branches", fmt.Sprint(stats.Branches)},
		{"Branch values", fmt.Sprint(stats.Values)},
		{"Empty slots", fmt.Sprint(stats.Empty)},
		{"Child references", fmt.Sprint(stats.Substreams)},
		{"Encoded size", common.StorageSize(stats.Bytes).String()},
	}
}
