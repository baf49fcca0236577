package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/monkey-lang/monkey/internal/diag"
	"github.com/monkey-lang/monkey/internal/eval"
	"github.com/monkey-lang/monkey/internal/lexer"
	"github.com/monkey-lang/monkey/internal/object"
	"github.com/monkey-lang/monkey/internal/parser"
)

const (
	historyFile = ".monkey_history"
	prompt      = ">> "
)

const banner = "Monkey REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit."

func runRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	env := object.NewEnvironment()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		ln.AppendHistory(line)
		evalLine(line, env)
	}
}

// evalLine runs one REPL input through the whole pipeline. The environment
// persists across lines so let bindings survive.
func evalLine(line string, env *object.Environment) {
	lx := lexer.New(line)
	p := parser.New(lx)
	program := p.ParseProgram()

	if len(lx.Errors) > 0 || len(p.Errors()) > 0 {
		f := diag.NewFormatter(os.Stderr)
		f.AddSource("", line)
		for _, e := range lx.Errors {
			f.Format(e.ToDiagnostic())
		}
		for _, e := range p.Errors() {
			f.Format(e.ToDiagnostic())
		}
		return
	}

	result := eval.Eval(program, env)
	if result.Type() == object.ERROR_OBJ {
		fmt.Fprintln(os.Stderr, result.Inspect())
		return
	}
	if result != eval.NULL {
		fmt.Println(result.Inspect())
	}
}
