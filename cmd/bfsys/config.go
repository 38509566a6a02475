// This file is part of bfsys - https://github.com/db47h/bfsys
//
// Copyright 2026 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/db47h/bfsys/vm"
	"github.com/pkg/errors"
)

// config holds the settings that can be read from a TOML file. Command line
// flags override them.
type config struct {
	TapeSize int    `toml:"tape_size"`
	EOF      string `toml:"eof"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
	Raw      bool   `toml:"raw"`
	Dump     bool   `toml:"dump"`
}

func defaultConfig() config {
	return config{
		TapeSize: vm.DefaultTapeSize,
		EOF:      vm.EOFUnchanged.String(),
		LogLevel: "warn",
	}
}

// loadConfig decodes the TOML file fileName into c. Unknown keys are errors.
func loadConfig(fileName string, c *config) error {
	md, err := toml.DecodeFile(fileName, c)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		s := make([]string, len(keys))
		for n, k := range keys {
			s[n] = k.String()
		}
		return errors.Errorf("config %s: unknown keys: %s", fileName, strings.Join(s, ", "))
	}
	return nil
}

// options returns the VM options for c.
func (c *config) options() ([]vm.Option, error) {
	eof, err := vm.ParseEOFMode(c.EOF)
	if err != nil {
		return nil, err
	}
	return []vm.Option{vm.TapeSize(c.TapeSize), vm.OnEOF(eof)}, nil
}

type fileList []string

func (f *fileList) String() string     { return strings.Join(*f, ",") }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

type tapeSize int

func (sz *tapeSize) String() string { return strconv.Itoa(int(*sz)) }
func (sz *tapeSize) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if n <= 0 {
		return errors.Errorf("invalid tape size %d", n)
	}
	*sz = tapeSize(n)
	return nil
}
func (sz *tapeSize) Get() interface{} { return int(*sz) }

// cli holds the parsed command line.
type cli struct {
	config
	configFile string
	expr       string
	fileName   string
	with       fileList
	debug      bool
	disasm     bool
}

func parseArgs(args []string, output io.Writer) (*cli, error) {
	c := &cli{config: defaultConfig()}
	fs := flag.NewFlagSet("bfsys", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&c.configFile, "config", "", "read settings from TOML file `filename`")
	fs.StringVar(&c.expr, "e", "", "run `program` text instead of a file")
	fs.Var((*tapeSize)(&c.TapeSize), "size", "tape size in cells")
	fs.StringVar(&c.EOF, "eof", c.EOF, "value stored on end of input: unchanged, zero or minus-one")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: trace, debug, info, warn or error")
	fs.StringVar(&c.LogFile, "log-file", "", "also write JSON logs to `filename`")
	fs.BoolVar(&c.Raw, "raw", false, "switch the terminal to raw IO")
	fs.BoolVar(&c.Dump, "dump", false, "dump registers and tape to stderr upon exit")
	fs.Var(&c.with, "with", "Add `filename` to the input list (can be specified multiple times)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug diagnostics")
	fs.BoolVar(&c.disasm, "disasm", false, "list the linked program and exit")
	fs.Usage = func() {
		io.WriteString(output, "usage: bfsys [flags] [file]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := make(map[string]string)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })
	_, hasExpr := set["e"]

	if c.configFile != "" {
		if err := loadConfig(c.configFile, &c.config); err != nil {
			return nil, err
		}
		// flags set on the command line take precedence over the file.
		for name, v := range set {
			if name == "with" {
				continue
			}
			if err := fs.Set(name, v); err != nil {
				return nil, err
			}
		}
	}

	switch {
	case hasExpr && fs.NArg() > 0:
		return nil, errors.New("-e and a program file are mutually exclusive")
	case !hasExpr && fs.NArg() == 0:
		return nil, errors.New("no program supplied")
	case fs.NArg() > 0:
		// the program file is the last argument
		c.fileName = fs.Arg(fs.NArg() - 1)
	}
	return c, nil
}
