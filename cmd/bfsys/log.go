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
	"io"
	"log/slog"
	"os"

	"github.com/db47h/bfsys/vm"
	"github.com/pkg/errors"
	slogmulti "github.com/samber/slog-multi"
)

var levels = map[string]slog.Level{
	"trace": vm.LevelTrace,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey && len(groups) == 0 {
		if l, ok := a.Value.Any().(slog.Level); ok && l == vm.LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}

// newLogger returns a logger writing text to w and, if c.LogFile is set, JSON
// to that file. The returned function closes the log file.
func newLogger(c *config, w io.Writer) (*slog.Logger, func() error, error) {
	l, ok := levels[c.LogLevel]
	if !ok {
		return nil, nil, errors.Errorf("unknown log level %q", c.LogLevel)
	}
	level := new(slog.LevelVar)
	level.Set(l)
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: replaceLevel}

	handlers := []slog.Handler{slog.NewTextHandler(w, opts)}
	closeFn := func() error { return nil }
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "log file")
		}
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
		closeFn = f.Close
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}
