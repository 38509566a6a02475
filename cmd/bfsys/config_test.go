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
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestParseArgs(t *testing.T) {
	var out bytes.Buffer
	c, err := parseArgs([]string{"-size", "100", "-with", "a", "-with", "b", "prog.b"}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if c.TapeSize != 100 || c.fileName != "prog.b" || len(c.with) != 2 || c.with[1] != "b" {
		t.Errorf("bad parse: %+v", c)
	}
	if c.EOF != "unchanged" || c.LogLevel != "warn" {
		t.Errorf("bad defaults: %+v", c.config)
	}

	for _, args := range [][]string{
		{},
		{"-e", "+", "prog.b"},
		{"-size", "0", "prog.b"},
		{"-bogus"},
	} {
		if _, err = parseArgs(args, &out); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}

	c, err = parseArgs([]string{"-e", ""}, &out)
	if err != nil || c.fileName != "" || c.expr != "" {
		t.Errorf("empty -e program: %+v, %v", c, err)
	}

	if _, err = parseArgs([]string{"-h"}, &out); err != flag.ErrHelp {
		t.Errorf("expected ErrHelp, got %v", err)
	}
}

func TestConfigFile(t *testing.T) {
	fn := writeFile(t, "bfsys.toml", `
tape_size = 4096
eof = "zero"
log_level = "debug"
dump = true
`)
	var out bytes.Buffer
	c, err := parseArgs([]string{"-config", fn, "-eof", "minus-one", "prog.b"}, &out)
	if err != nil {
		t.Fatal(err)
	}
	want := config{TapeSize: 4096, EOF: "minus-one", LogLevel: "debug", Dump: true}
	if c.config != want {
		t.Errorf("expected %+v, got %+v", want, c.config)
	}
	opts, err := c.options()
	if err != nil || len(opts) != 2 {
		t.Errorf("options: %v, %v", opts, err)
	}

	fn = writeFile(t, "bad.toml", "tape_sise = 12\n")
	_, err = parseArgs([]string{"-config", fn, "prog.b"}, &out)
	if err == nil || !strings.Contains(err.Error(), "tape_sise") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	var b bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "log.json")
	c := defaultConfig()
	c.LogLevel = "trace"
	c.LogFile = logFile
	log, closeLog, err := newLogger(&c, &b)
	if err != nil {
		t.Fatal(err)
	}
	log.Warn("syscall failed")
	if err = closeLog(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "syscall failed") {
		t.Errorf("text log: %q", b.String())
	}
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"syscall failed"`) {
		t.Errorf("json log: %q", data)
	}

	c.LogLevel = "loud"
	if _, _, err = newLogger(&c, &b); err == nil {
		t.Error("unknown log level accepted")
	}
}

func TestLoadProgram(t *testing.T) {
	fn := writeFile(t, "bad.b", "+[\n")
	_, err := loadProgram(&cli{fileName: fn})
	if err == nil || !strings.Contains(err.Error(), "1: missing closing bracket") {
		t.Errorf("expected bracket error, got %v", err)
	}
	p, err := loadProgram(&cli{expr: "+[-]"})
	if err != nil || len(p) != 4 {
		t.Errorf("bad program %v, %v", p, err)
	}
	var b bytes.Buffer
	if err = listProgram(p, &b); err != nil {
		t.Fatal(err)
	}
	if want := "     0\t+\n     1\t[ 3\n     2\t-\n     3\t] 1\n"; b.String() != want {
		t.Errorf("expected %q, got %q", want, b.String())
	}
}
