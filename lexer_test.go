// lexer_test.go
package minilua

import (
	"reflect"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer(src)
	ts, err := l.Scan()
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	return ts
}

func typesWithoutEOF(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	end := len(tokens)
	if tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func wantLexError(t *testing.T, src string, code ErrorCode) *LexError {
	t.Helper()
	l := NewLexer(src)
	ts, err := l.Scan()
	if err == nil {
		t.Fatalf("expected lex error for %q, got tokens %v", src, ts)
	}
	if ts != nil {
		t.Fatalf("expected no partial token list for %q, got %v", src, ts)
	}
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("expected *LexError, got %T: %v", err, err)
	}
	if le.Code != code {
		t.Fatalf("expected error code %v, got %v (%v)", code, le.Code, le)
	}
	return le
}

func wantNumber(t *testing.T, src string, value float64) {
	t.Helper()
	got := wantTypes(t, src, []TokenType{NUMBER})
	if got[0].Number != value {
		t.Fatalf("source %q: want number %v, got %v", src, value, got[0].Number)
	}
}

func Test_Lexer_Statement(t *testing.T) {
	got := wantTypes(t, "local x = 42\n", []TokenType{RESERVED, NAME, SYMBOL, NUMBER, EOL})
	if got[0].Word != LOCAL {
		t.Fatalf("want reserved word %v, got %v", LOCAL, got[0].Word)
	}
	if got[1].Text != "x" {
		t.Fatalf("want name %q, got %q", "x", got[1].Text)
	}
	if got[2].Symbol != ASSIGN {
		t.Fatalf("want symbol %v, got %v", ASSIGN, got[2].Symbol)
	}
	if got[3].Number != 42 {
		t.Fatalf("want number 42, got %v", got[3].Number)
	}
}

func Test_Lexer_ReservedWords_AllTwentyOne(t *testing.T) {
	src := "and break do else elseif end false for function if in local nil not or repeat return then true until while"
	got := toks(t, src)
	wantWords := []Word{
		AND, BREAK, DO, ELSE, ELSEIF, END, FALSE, FOR, FUNCTION, IF, IN,
		LOCAL, NIL, NOT, OR, REPEAT, RETURN, THEN, TRUE, UNTIL, WHILE,
	}
	if len(got) != len(wantWords)+1 {
		t.Fatalf("want %d tokens + EOF, got %d", len(wantWords), len(got))
	}
	for i, w := range wantWords {
		if got[i].Type != RESERVED {
			t.Fatalf("token %d: want RESERVED, got %v", i, got[i].Type)
		}
		if got[i].Word != w {
			t.Fatalf("token %d: want word %v, got %v", i, w, got[i].Word)
		}
		if got[i].Lexeme != w.String() {
			t.Fatalf("token %d: want lexeme %q, got %q", i, w.String(), got[i].Lexeme)
		}
	}
}

func Test_Lexer_LongestMatch_NotPrefixKeyword(t *testing.T) {
	got := wantTypes(t, "andx", []TokenType{NAME})
	if got[0].Text != "andx" {
		t.Fatalf("want name %q, got %q", "andx", got[0].Text)
	}

	got = wantTypes(t, "and", []TokenType{RESERVED})
	if got[0].Word != AND {
		t.Fatalf("want word %v, got %v", AND, got[0].Word)
	}
}

func Test_Lexer_Names_CaseSensitiveKeywords(t *testing.T) {
	// Reserved words are lowercase only; any other spelling is a name.
	got := wantTypes(t, "AND While _end if2", []TokenType{NAME, NAME, NAME, NAME})
	if got[2].Text != "_end" {
		t.Fatalf("want name %q, got %q", "_end", got[2].Text)
	}
}

func Test_Lexer_Numbers(t *testing.T) {
	wantNumber(t, "123", 123)
	wantNumber(t, "0", 0)
	wantNumber(t, "0x1A", 26)
	wantNumber(t, "0X7f", 127)
	wantNumber(t, "1.5", 1.5)
	wantNumber(t, ".5", 0.5)
	wantNumber(t, "1.", 1)
	wantNumber(t, "1.5e-3", 0.0015)
	wantNumber(t, "1e+2", 100)
	wantNumber(t, "2E3", 2000)
}

func Test_Lexer_Number_ThenConcat(t *testing.T) {
	got := wantTypes(t, "1..2", []TokenType{NUMBER, SYMBOL, NUMBER})
	if got[0].Number != 1 || got[2].Number != 2 {
		t.Fatalf("want numbers 1 and 2, got %v and %v", got[0].Number, got[2].Number)
	}
	if got[1].Symbol != CONCAT {
		t.Fatalf("want symbol %v, got %v", CONCAT, got[1].Symbol)
	}

	// Same with a fractional left operand and with ellipsis.
	wantTypes(t, "1.5..2", []TokenType{NUMBER, SYMBOL, NUMBER})
	wantTypes(t, "1...2", []TokenType{NUMBER, SYMBOL, NUMBER})
}

func Test_Lexer_Number_Errors(t *testing.T) {
	wantLexError(t, "1.2.3", InvalidNumber)
	wantLexError(t, "12a", InvalidNumber)
	wantLexError(t, "1e", InvalidNumber)
	wantLexError(t, "0x", InvalidNumber)
	wantLexError(t, "0x1.2", InvalidNumber)
}

func Test_Lexer_Strings(t *testing.T) {
	got := wantTypes(t, `"hello"`, []TokenType{STRING})
	if got[0].Text != "hello" {
		t.Fatalf("want %q, got %q", "hello", got[0].Text)
	}
	if got[0].Lexeme != `"hello"` {
		t.Fatalf("want lexeme %q, got %q", `"hello"`, got[0].Lexeme)
	}

	// Single quotes with escaped single quotes inside.
	got = wantTypes(t, `'he said \'hi\''`, []TokenType{STRING})
	if got[0].Text != "he said 'hi'" {
		t.Fatalf("want %q, got %q", "he said 'hi'", got[0].Text)
	}

	// A double quote inside a single-quoted string needs no escape.
	got = wantTypes(t, `'a "b" c'`, []TokenType{STRING})
	if got[0].Text != `a "b" c` {
		t.Fatalf("want %q, got %q", `a "b" c`, got[0].Text)
	}

	got = wantTypes(t, `"a\nb\\c"`, []TokenType{STRING})
	if got[0].Text != "a\nb\\c" {
		t.Fatalf("want %q, got %q", "a\nb\\c", got[0].Text)
	}
}

func Test_Lexer_String_Errors(t *testing.T) {
	wantLexError(t, `"abc`, UnterminatedLiteral)
	wantLexError(t, `'abc`, UnterminatedLiteral)
	wantLexError(t, `"abc\`, UnterminatedLiteral)
	wantLexError(t, `"a\qb"`, InvalidEscape)
	wantLexError(t, `"a\tb"`, InvalidEscape)
}

func Test_Lexer_Comments(t *testing.T) {
	// The comment span is discarded; the following newline is preserved.
	got := wantTypes(t, "--comment\nx", []TokenType{EOL, NAME})
	if got[1].Text != "x" {
		t.Fatalf("want name %q, got %q", "x", got[1].Text)
	}

	// Comment at end of input without a trailing newline.
	wantTypes(t, "x --trailing", []TokenType{NAME})
	wantTypes(t, "--only", []TokenType{})

	// "--" wins over the minus symbol; a lone "-" stays MINUS.
	got = wantTypes(t, "a - b", []TokenType{NAME, SYMBOL, NAME})
	if got[1].Symbol != MINUS {
		t.Fatalf("want symbol %v, got %v", MINUS, got[1].Symbol)
	}
}

func Test_Lexer_Symbols_AllTwentySix(t *testing.T) {
	src := "+ - * / % ^ # == >= <= < > ~= ( ) { } [ ] ; : , . .. ... ="
	want := []Symbol{
		PLUS, MINUS, MULT, DIV, MOD, POWER, LENGTH, EQ, GREATER_EQ, LESS_EQ,
		LESS, GREATER, NEQ, LROUND, RROUND, LCURLY, RCURLY, LSQUARE, RSQUARE,
		SEMICOLON, COLON, COMMA, PERIOD, CONCAT, ELLIPSIS, ASSIGN,
	}
	got := toks(t, src)
	if len(got) != len(want)+1 {
		t.Fatalf("want %d symbols + EOF, got %d tokens", len(want), len(got))
	}
	for i, s := range want {
		if got[i].Type != SYMBOL {
			t.Fatalf("token %d: want SYMBOL, got %v", i, got[i].Type)
		}
		if got[i].Symbol != s {
			t.Fatalf("token %d: want %q, got %q", i, s, got[i].Symbol)
		}
		if got[i].Lexeme != s.String() {
			t.Fatalf("token %d: want lexeme %q, got %q", i, s.String(), got[i].Lexeme)
		}
	}
}

func Test_Lexer_Dot_Forms(t *testing.T) {
	wantTypes(t, "a.b", []TokenType{NAME, SYMBOL, NAME})
	wantTypes(t, "a..b", []TokenType{NAME, SYMBOL, NAME})
	got := wantTypes(t, "f(...)", []TokenType{NAME, SYMBOL, SYMBOL, SYMBOL})
	if got[2].Symbol != ELLIPSIS {
		t.Fatalf("want %v, got %v", ELLIPSIS, got[2].Symbol)
	}
}

func Test_Lexer_InvalidToken(t *testing.T) {
	le := wantLexError(t, "a~b", InvalidToken)
	if le.Line != 1 {
		t.Fatalf("want error on line 1, got %d", le.Line)
	}
	wantLexError(t, "@", InvalidToken)
	wantLexError(t, "a & b", InvalidToken)
}

func Test_Lexer_Newlines(t *testing.T) {
	got := wantTypes(t, "a\nb\n", []TokenType{NAME, EOL, NAME, EOL})
	if got[1].Lexeme != "\n" {
		t.Fatalf("want EOL lexeme %q, got %q", "\n", got[1].Lexeme)
	}
	if got[2].Line != 2 {
		t.Fatalf("want name on line 2, got %d", got[2].Line)
	}
}

func Test_Lexer_Whitespace(t *testing.T) {
	// Intra-line whitespace is skipped; trailing whitespace still ends in EOF.
	wantTypes(t, "  \t x \t ", []TokenType{NAME})
	wantTypes(t, "   ", []TokenType{})
	wantTypes(t, "", []TokenType{})

	// Carriage returns are whitespace, newlines are tokens.
	wantTypes(t, "a\r\nb", []TokenType{NAME, EOL, NAME})
}

func Test_Lexer_OutputInvariants(t *testing.T) {
	sources := []string{
		"",
		"   ",
		"--only a comment",
		"local x = 1 -- init\nreturn x\n",
		"while true do break end",
		`print("hi", 0x10, ...)`,
	}
	for _, src := range sources {
		got := toks(t, src)
		if len(got) == 0 {
			t.Fatalf("source %q: empty token list", src)
		}
		if got[len(got)-1].Type != EOF {
			t.Fatalf("source %q: last token is %v, not EOF", src, got[len(got)-1].Type)
		}
		for i, tok := range got {
			if tok.Type == COMMENT {
				t.Fatalf("source %q: COMMENT leaked into output at %d", src, i)
			}
			if tok.Type == EOF && i != len(got)-1 {
				t.Fatalf("source %q: EOF not last (index %d of %d)", src, i, len(got))
			}
		}
	}
}

func Test_Lexer_Idempotent(t *testing.T) {
	src := "local a = 1.5e2 -- note\nif a >= 0x10 then print('ok\\n') end\n"
	first := toks(t, src)
	second := toks(t, src)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two scans of the same source differ:\n%v\n%v", first, second)
	}
}

func Test_Lexer_Tracer(t *testing.T) {
	var traced []Token
	l := NewLexer("local x = 1 -- c\n")
	l.SetTracer(func(tok Token) { traced = append(traced, tok) })
	got, err := l.Scan()
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	// Every emitted token except the trailing EOF is traced, in order.
	if !reflect.DeepEqual(traced, got[:len(got)-1]) {
		t.Fatalf("traced tokens differ from output:\n%v\n%v", traced, got)
	}
	for _, tok := range traced {
		if tok.Type == EOF || tok.Type == COMMENT {
			t.Fatalf("traced a %v token", tok.Type)
		}
	}
}

func Test_Lexer_Positions(t *testing.T) {
	got := toks(t, "local x\n  y")
	if got[0].Line != 1 || got[0].Col != 0 {
		t.Fatalf("token 0: want 1:0, got %d:%d", got[0].Line, got[0].Col)
	}
	if got[1].Col != 6 {
		t.Fatalf("token 1: want col 6, got %d", got[1].Col)
	}
	if got[3].Line != 2 || got[3].Col != 2 {
		t.Fatalf("token 3: want 2:2, got %d:%d", got[3].Line, got[3].Col)
	}
}
