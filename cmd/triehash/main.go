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


// triehash computes Merkle Patricia Trie roots of key/value sets.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	encodingFlag = &cli.StringFlag{
		Name:  "encoding",
		Usage: "Node encoding (rlp, codec)",
		Value: defaultConfig.Encoding,
	}
	hashFlag = &cli.StringFlag{
		Name:  "hash",
		Usage: "Hash function (keccak256, blake2b256, sha256)",
		Value: defaultConfig.Hash,
	}
	secureFlag = &cli.BoolFlag{
		Name:  "secure",
		Usage: "Hash keys before inserting them",
	}
	parallelFlag = &cli.BoolFlag{
		Name:  "parallel",
		Usage: "Build the children of the root branch concurrently",
	}
	iterativeFlag = &cli.BoolFlag{
		Name:  "iterative",
		Usage: "Build without recursion (for very long keys)",
	}
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "File to read input from instead of the arguments",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}

	configFlags = []cli.Flag{
		configFileFlag,
		encodingFlag,
		hashFlag,
		secureFlag,
		parallelFlag,
		iterativeFlag,
	}
)

var app = &cli.App{
	Name:  "triehash",
	Usage: "the trie root calculator",
	Flags: []cli.Flag{verbosityFlag},
	Commands: []*cli.Command{
		rootCommand,
		orderedCommand,
		inspectCommand,
		dumpConfigCommand,
	},
	Before: setupLogging,
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging installs a terminal log handler on stderr, coloured when
// stderr is a terminal.
func setupLogging(ctx *cli.Context) error {
	var (
		usecolor = (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		output   = io.Writer(os.Stderr)
	)
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	glogger := log.NewGlogHandler(log.StreamHandler(output, log.TerminalFormat(usecolor)))
	glogger.Verbosity(log.Lvl(ctx.Int(verbosityFlag.Name)))
	log.Root().SetHandler(glogger)
	return nil
}
