package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/monkey-lang/monkey/internal/diag"
	"github.com/monkey-lang/monkey/internal/eval"
	"github.com/monkey-lang/monkey/internal/lexer"
	"github.com/monkey-lang/monkey/internal/object"
	"github.com/monkey-lang/monkey/internal/parser"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: monkey <command> [options]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  run <file>    Evaluate a Monkey source file\n")
		fmt.Fprintf(os.Stderr, "  repl          Start an interactive session\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "run":
		os.Exit(runRun(args))
	case "repl":
		os.Exit(runRepl(args))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: monkey run <file>\n")
		return 1
	}

	filename := args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "monkey: %v\n", err)
		return 1
	}
	src := string(data)

	lx := lexer.New(src)
	lx.SetFilename(filename)
	p := parser.New(lx)
	program := p.ParseProgram()

	if reportDiagnostics(os.Stderr, filename, src, lx, p) {
		return 1
	}

	env := object.NewEnvironment()
	result := eval.Eval(program, env)
	if result.Type() == object.ERROR_OBJ {
		fmt.Fprintln(os.Stderr, result.Inspect())
		return 1
	}

	if result != eval.NULL {
		fmt.Println(result.Inspect())
	}
	return 0
}

// reportDiagnostics prints every lexer and parser diagnostic accumulated for
// the given source and reports whether any were found. A non-empty error list
// means the (possibly partial) program must not be evaluated.
func reportDiagnostics(w *os.File, filename, src string, lx *lexer.Lexer, p *parser.Parser) bool {
	if len(lx.Errors) == 0 && len(p.Errors()) == 0 {
		return false
	}

	f := diag.NewFormatter(w)
	f.AddSource(filename, src)

	for _, e := range lx.Errors {
		f.Format(e.ToDiagnostic())
	}
	for _, e := range p.Errors() {
		f.Format(e.ToDiagnostic())
	}

	return true
}
