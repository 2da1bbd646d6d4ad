package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	minilua "github.com/CleanIce-BlueSnowy/Mini-Lua"
)

const (
	historyFile = ".minilua_history"
	promptMain  = "==> "
)

var banner = fmt.Sprintf("mini-Lua %s tokenizer REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", minilua.Version)

var (
	flagJSON    = flag.Bool("json", false, "emit NDJSON: one JSON object per token")
	flagWithEOF = flag.Bool("with-eof", false, "include the EOF token in output")
	flagColor   = flag.Bool("color", false, "colorize the token trace")
	flagREPL    = flag.Bool("i", false, "force interactive mode")
)

func main() {
	flag.Parse()
	args := flag.Args()

	if *flagREPL || (len(args) == 0 && isTerminal(os.Stdin)) {
		os.Exit(runREPL())
	}

	// When no files are given, read stdin.
	if len(args) == 0 {
		if err := process(os.Stdin, "stdin"); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	exit := 0
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open %s: %v\n", path, err)
			exit = 1
			continue
		}
		if err := process(f, path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			exit = 1
		}
		f.Close()
	}
	os.Exit(exit)
}

func process(r io.Reader, filename string) error {
	src, err := slurp(r)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	lex := minilua.NewLexer(src)
	if !*flagJSON {
		// The trace prints as tokens are recognized; on a lexical error the
		// lines already written stay, matching scan-until-failure semantics.
		if *flagColor {
			lex.SetTracer(minilua.NewColorTracePrinter(os.Stdout))
		} else {
			lex.SetTracer(minilua.NewTracePrinter(os.Stdout))
		}
	}

	toks, err := lex.Scan()
	if err != nil {
		return minilua.WrapErrorWithName(err, filename, src)
	}

	if *flagJSON {
		enc := json.NewEncoder(os.Stdout)
		for _, t := range toks {
			if t.Type == minilua.EOF && !*flagWithEOF {
				continue
			}
			if err := enc.Encode(toOutToken(filename, t)); err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
		}
		return nil
	}

	if *flagWithEOF {
		fmt.Println(minilua.FormatTrace(toks[len(toks)-1]))
	}
	return nil
}

func runREPL() int {
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

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	trace := minilua.NewColorTracePrinter(os.Stdout)
	for {
		input, err := ln.Prompt(promptMain)
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

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		lex := minilua.NewLexer(input)
		lex.SetTracer(trace)
		if _, err := lex.Scan(); err != nil {
			fmt.Fprintln(os.Stderr, minilua.WrapErrorWithSource(err, input))
			continue
		}
		ln.AppendHistory(input)
	}
}

func isTerminal(f *os.File) bool {
	st, err := f.Stat()
	return err == nil && st.Mode()&os.ModeCharDevice != 0
}

func slurp(r io.Reader) (string, error) {
	var b strings.Builder
	br := bufio.NewReader(r)
	for {
		chunk, err := br.ReadString(0)
		b.WriteString(chunk)
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			if err == bufio.ErrBufferFull {
				continue
			}
			return "", err
		}
	}
}

type outToken struct {
	File   string  `json:"file,omitempty"`
	Type   string  `json:"type"`
	Word   string  `json:"word,omitempty"`
	Symbol string  `json:"symbol,omitempty"`
	Number float64 `json:"number,omitempty"`
	Text   string  `json:"text,omitempty"`
	Lexeme string  `json:"lexeme,omitempty"`
	Line   int     `json:"line"`
	Col    int     `json:"col"`
}

func toOutToken(file string, t minilua.Token) outToken {
	out := outToken{
		File:   file,
		Type:   t.Type.String(),
		Lexeme: t.Lexeme,
		Line:   t.Line,
		Col:    t.Col,
	}
	switch t.Type {
	case minilua.RESERVED:
		out.Word = t.Word.String()
	case minilua.SYMBOL:
		out.Symbol = t.Symbol.String()
	case minilua.NUMBER:
		out.Number = t.Number
	case minilua.STRING, minilua.NAME:
		out.Text = t.Text
	}
	return out
}
