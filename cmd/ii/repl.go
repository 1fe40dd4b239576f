package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/YulinWu/interpreter/pkg/driver"
	"github.com/YulinWu/interpreter/pkg/parser"
)

const (
	promptMain = "ii> "
	promptCont = "... "
)

// trackingWriter remembers whether the last byte written was a newline so
// the prompt always starts on a fresh line.
type trackingWriter struct {
	w           io.Writer
	wrote       bool
	lastNewline bool
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	if len(p) > 0 {
		t.wrote = true
		t.lastNewline = p[len(p)-1] == '\n'
	}
	return t.w.Write(p)
}

func (t *trackingWriter) finishLine() {
	if t.wrote && !t.lastNewline {
		fmt.Fprintln(t.w)
	}
	t.wrote = false
}

func runRepl(c *cli) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if path := c.cfg.HistoryPath; path != "" {
		if f, err := os.Open(path); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(path); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	out := &trackingWriter{w: c.stdout}
	session := driver.NewSession(c.cfg, out)
	fmt.Fprintf(c.stdout, "%s (Ctrl-D to exit)\n", cliToolVersion)
	for {
		src, ok := readChunk(ln)
		if !ok {
			fmt.Fprintln(c.stdout)
			return 0
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		warnings, err := session.Eval(src)
		out.finishLine()
		driver.ReportWarnings(c.stderr, "", warnings, c.cfg)
		if err != nil {
			fmt.Fprintln(c.stderr, driver.DescribeDiagnostic(driver.ErrorDiagnostic("", err)))
		}
	}
}

// readChunk reads lines until they form a complete chunk or a syntax error
// that more input cannot fix. ok is false at end of input.
func readChunk(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl-C discards the pending chunk.
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, err := parser.ParseProgram(src); parser.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}
