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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PigCharid/triehash/triehash"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
)

// parseToken decodes 0x prefixed tokens as hex and takes everything else
// verbatim.
func parseToken(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return hexutil.Decode(s)
	}
	return []byte(s), nil
}

// readLines returns the meaningful lines of r, skipping blank lines and
// comments. Errors are annotated with their line number.
func readLines(r io.Reader, fn func(text string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := fn(text); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}

// readPairs parses one whitespace separated key and value per line.
func readPairs(r io.Reader) ([]triehash.Pair, error) {
	var pairs []triehash.Pair
	err := readLines(r, func(text string) error {
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return fmt.Errorf("expected key and value, got %d fields", len(fields))
		}
		key, err := parseToken(fields[0])
		if err != nil {
			return fmt.Errorf("invalid key: %w", err)
		}
		value, err := parseToken(fields[1])
		if err != nil {
			return fmt.Errorf("invalid value: %w", err)
		}
		pairs = append(pairs, triehash.Pair{Key: key, Value: value})
		return nil
	})
	return pairs, err
}

// readValues parses one value per line.
func readValues(r io.Reader) ([][]byte, error) {
	var values [][]byte
	err := readLines(r, func(text string) error {
		value, err := parseToken(text)
		if err != nil {
			return err
		}
		values = append(values, value)
		return nil
	})
	return values, err
}

// argPairs parses key=value command line arguments.
func argPairs(args []string) ([]triehash.Pair, error) {
	pairs := make([]triehash.Pair, 0, len(args))
	for _, arg := range args {
		kv := strings.SplitN(arg, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid pair %q, want key=value", arg)
		}
		key, err := parseToken(kv[0])
		if err != nil {
			return nil, fmt.Errorf("invalid key in %q: %w", arg, err)
		}
		value, err := parseToken(kv[1])
		if err != nil {
			return nil, fmt.Errorf("invalid value in %q: %w", arg, err)
		}
		pairs = append(pairs, triehash.Pair{Key: key, Value: value})
	}
	return pairs, nil
}

// inputPairs collects the pairs from the input file or, without one, from
// the arguments.
func inputPairs(ctx *cli.Context) ([]triehash.Pair, error) {
	file := ctx.String(inputFlag.Name)
	if file == "" {
		return argPairs(ctx.Args().Slice())
	}
	if ctx.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments with --%s", inputFlag.Name)
	}
	f, err := openInput(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readPairs(f)
}

// inputValues is inputPairs for ordered tries.
func inputValues(ctx *cli.Context) ([][]byte, error) {
	file := ctx.String(inputFlag.Name)
	if file == "" {
		values := make([][]byte, ctx.NArg())
		for i, arg := range ctx.Args().Slice() {
			v, err := parseToken(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q: %w", arg, err)
			}
			values[i] = v
		}
		return values, nil
	}
	if ctx.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments with --%s", inputFlag.Name)
	}
	f, err := openInput(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readValues(f)
}

// openInput opens file for reading, "-" being standard input.
func openInput(file string) (io.ReadCloser, error) {
	if file == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(file)
}
