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
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/PigCharid/triehash/hashing"
	"github.com/PigCharid/triehash/triehash"
	"github.com/PigCharid/triehash/triestream"
	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
)

var dumpConfigCommand = &cli.Command{
	Action:      dumpConfig,
	Name:        "dumpconfig",
	Usage:       "Show configuration values",
	ArgsUsage:   "[file]",
	Flags:       configFlags,
	Description: `The dumpconfig command shows configuration values, optionally writing them to a file.`,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// triehashConfig is the file representation of the build settings.
type triehashConfig struct {
	Encoding  string // node encoding, see triestream.ByName
	Hash      string // hash function, see hashing.ByName
	Secure    bool
	Parallel  bool
	Iterative bool
}

var defaultConfig = triehashConfig{
	Encoding: "rlp",
	Hash:     "keccak256",
}

func loadConfig(file string, cfg *triehashConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the configuration file, if any, and applies the flags set
// on the command line on top of it.
func makeConfig(ctx *cli.Context) (triehashConfig, error) {
	cfg := defaultConfig
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(encodingFlag.Name) {
		cfg.Encoding = ctx.String(encodingFlag.Name)
	}
	if ctx.IsSet(hashFlag.Name) {
		cfg.Hash = ctx.String(hashFlag.Name)
	}
	if ctx.IsSet(secureFlag.Name) {
		cfg.Secure = ctx.Bool(secureFlag.Name)
	}
	if ctx.IsSet(parallelFlag.Name) {
		cfg.Parallel = ctx.Bool(parallelFlag.Name)
	}
	if ctx.IsSet(iterativeFlag.Name) {
		cfg.Iterative = ctx.Bool(iterativeFlag.Name)
	}
	return cfg, nil
}

// build resolves the configured names into a root derivation config.
func (c *triehashConfig) build() (*triehash.Config, error) {
	newEncoder, err := triestream.ByName(c.Encoding)
	if err != nil {
		return nil, err
	}
	hasher, err := hashing.ByName(c.Hash)
	if err != nil {
		return nil, err
	}
	return &triehash.Config{
		NewEncoder: newEncoder,
		Hasher:     hasher,
		Parallel:   c.Parallel,
		Iterative:  c.Iterative,
	}, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	dump.Write(out)
	return nil
}
