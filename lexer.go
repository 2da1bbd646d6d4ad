// lexer.go: single-pass tokenizer for the mini-Lua grammar
package minilua

import (
	"fmt"
	"strconv"
	"strings"
)

// Tracer receives each token as the driver loop emits it. COMMENT tokens are
// filtered before tracing and the trailing EOF token is never traced.
type Tracer func(Token)

// Lexer scans a mini-Lua source string into tokens. One instance processes
// one source buffer start to finish; the cursors only move forward.
type Lexer struct {
	src      string
	start    int // start index of current lexeme
	cur      int // current index
	line     int // 1-based
	col      int // 0-based column within line
	tokens   []Token
	reserved map[string]Word
	tracer   Tracer

	// precise token start position
	tokLine int
	tokCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:      src,
		line:     1,
		col:      0,
		reserved: reservedWords,
	}
}

// SetTracer installs a per-token callback invoked by Scan for every emitted
// token. A nil tracer disables tracing.
func (l *Lexer) SetTracer(fn Tracer) { l.tracer = fn }

/* ===========================
   cursor primitives
   =========================== */

// The primitives never fail: at end of input they return the NUL byte, which
// no lexeme may contain, so lookahead at the buffer boundary needs no
// branching in the scanners.

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) previous() byte {
	if l.cur == 0 {
		return 0
	}
	return l.src[l.cur-1]
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.cur]
}

func (l *Lexer) peekNext() byte {
	if l.cur+1 >= len(l.src) {
		return 0
	}
	return l.src[l.cur+1]
}

func (l *Lexer) matchChar(target byte) bool {
	if l.isAtEnd() || l.src[l.cur] != target {
		return false
	}
	l.advance()
	return true
}

// extractWord returns the lexeme just scanned.
func (l *Lexer) extractWord() string { return l.src[l.start:l.cur] }

// alignPointer marks the beginning of the next lexeme.
func (l *Lexer) alignPointer() { l.start = l.cur }

/* ===========================
   character classes (ASCII only)
   =========================== */

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}
func isHexLetter(b byte) bool {
	return (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func (l *Lexer) errf(code ErrorCode, format string, args ...interface{}) error {
	return &LexError{Line: l.line, Col: l.col, Code: code, Msg: fmt.Sprintf(format, args...)}
}

/* ===========================
   token construction
   =========================== */

func (l *Lexer) token(tt TokenType) Token {
	return Token{
		Type:   tt,
		Lexeme: l.extractWord(),
		Line:   l.tokLine,
		Col:    l.tokCol,
	}
}

func (l *Lexer) symbolToken(s Symbol) Token {
	tok := l.token(SYMBOL)
	tok.Symbol = s
	return tok
}

/* ===========================
   scanners
   =========================== */

// skipWhitespace consumes intra-line whitespace. Newlines are significant
// tokens, never whitespace.
func (l *Lexer) skipWhitespace() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		default:
			return
		}
	}
}

// scanComment consumes a "--" line comment up to, but not including, the
// next newline or the end of input.
func (l *Lexer) scanComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// scanNumber is entered with the first character (a digit, or the '.' of a
// ".5"-style literal) already consumed. It recognizes integer, float,
// hexadecimal and scientific notation in one forward pass; every literal
// becomes a float64.
func (l *Lexer) scanNumber() (Token, error) {
	hex := false
	floating := false
	science := false
	if l.previous() == '0' && (l.matchChar('x') || l.matchChar('X')) {
		hex = true
	}
	if l.previous() == '.' {
		floating = true
	}
	signedPower := false
	numberPower := false

loop:
	for {
		ch := l.peek()
		switch {
		case isDigit(ch):
			if science {
				numberPower = true
			}
			l.advance()
		case !hex && (ch == 'e' || ch == 'E'):
			floating = true
			science = true
			l.advance()
		case isHexLetter(ch):
			if !hex {
				return Token{}, l.errf(InvalidNumber, "hex digit %q in a decimal literal", ch)
			}
			l.advance()
		case ch == '.':
			if l.peekNext() == '.' {
				// the dot begins a ".."/"..." operator, not a fraction
				break loop
			}
			if hex || floating {
				return Token{}, l.errf(InvalidNumber, "unexpected '.' in numeric literal")
			}
			floating = true
			l.advance()
		case (ch == '-' || ch == '+') && science && !signedPower && !numberPower:
			signedPower = true
			l.advance()
		default:
			break loop
		}
	}

	word := l.extractWord()
	tok := l.token(NUMBER)
	switch {
	case floating:
		v, err := strconv.ParseFloat(word, 64)
		if err != nil {
			return Token{}, l.errf(InvalidNumber, "malformed numeric literal %q", word)
		}
		tok.Number = v
	case hex:
		v, err := strconv.ParseUint(word[2:], 16, 64)
		if err != nil {
			return Token{}, l.errf(InvalidNumber, "malformed hexadecimal literal %q", word)
		}
		tok.Number = float64(v)
	default:
		v, err := strconv.ParseUint(word, 10, 64)
		if err != nil {
			return Token{}, l.errf(InvalidNumber, "malformed numeric literal %q", word)
		}
		tok.Number = float64(v)
	}
	return tok, nil
}

// scanString is entered with the opening quote already consumed; the same
// quote character terminates the literal. The decoded value excludes the
// surrounding quotes.
func (l *Lexer) scanString() (Token, error) {
	tag := l.previous()
	var text strings.Builder
	for {
		if l.isAtEnd() {
			return Token{}, l.errf(UnterminatedLiteral, "string was not terminated")
		}
		if l.peek() == tag {
			break
		}
		if l.matchChar('\\') {
			ch, err := l.parseEscape()
			if err != nil {
				return Token{}, err
			}
			text.WriteByte(ch)
			continue
		}
		text.WriteByte(l.advance())
	}
	l.advance() // closing delimiter

	tok := l.token(STRING)
	tok.Text = text.String()
	return tok, nil
}

func (l *Lexer) parseEscape() (byte, error) {
	if l.isAtEnd() {
		return 0, l.errf(UnterminatedLiteral, "unfinished escape sequence")
	}
	switch ch := l.advance(); ch {
	case '\\':
		return '\\', nil
	case 'n':
		return '\n', nil
	case '\'':
		return '\'', nil
	case '"':
		return '"', nil
	default:
		return 0, l.errf(InvalidEscape, "invalid escape sequence: \\%c", ch)
	}
}

// scanName is entered with the first identifier character already consumed.
// The lexeme is looked up in the reserved-word table; a hit yields RESERVED,
// a miss yields NAME.
func (l *Lexer) scanName() (Token, error) {
	for isAlphaNum(l.peek()) {
		l.advance()
	}
	word := l.extractWord()
	if w, ok := l.reserved[word]; ok {
		tok := l.token(RESERVED)
		tok.Word = w
		return tok, nil
	}
	tok := l.token(NAME)
	tok.Text = word
	return tok, nil
}

/* ===========================
   main scanner
   =========================== */

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespace()
	l.alignPointer()
	l.tokLine = l.line
	l.tokCol = l.col

	if l.isAtEnd() {
		return Token{Type: EOF, Line: l.tokLine, Col: l.tokCol}, nil
	}

	ch := l.advance()
	switch ch {
	case '\n':
		return l.token(EOL), nil
	case '+':
		return l.symbolToken(PLUS), nil
	case '-':
		if l.matchChar('-') {
			l.scanComment()
			return l.token(COMMENT), nil
		}
		return l.symbolToken(MINUS), nil
	case '*':
		return l.symbolToken(MULT), nil
	case '/':
		return l.symbolToken(DIV), nil
	case '%':
		return l.symbolToken(MOD), nil
	case '^':
		return l.symbolToken(POWER), nil
	case '#':
		return l.symbolToken(LENGTH), nil
	case '=':
		if l.matchChar('=') {
			return l.symbolToken(EQ), nil
		}
		return l.symbolToken(ASSIGN), nil
	case '>':
		if l.matchChar('=') {
			return l.symbolToken(GREATER_EQ), nil
		}
		return l.symbolToken(GREATER), nil
	case '<':
		if l.matchChar('=') {
			return l.symbolToken(LESS_EQ), nil
		}
		return l.symbolToken(LESS), nil
	case '~':
		if l.matchChar('=') {
			return l.symbolToken(NEQ), nil
		}
		return Token{}, l.errf(InvalidToken, "'~' must be followed by '='")
	case '(':
		return l.symbolToken(LROUND), nil
	case ')':
		return l.symbolToken(RROUND), nil
	case '{':
		return l.symbolToken(LCURLY), nil
	case '}':
		return l.symbolToken(RCURLY), nil
	case '[':
		return l.symbolToken(LSQUARE), nil
	case ']':
		return l.symbolToken(RSQUARE), nil
	case ';':
		return l.symbolToken(SEMICOLON), nil
	case ':':
		return l.symbolToken(COLON), nil
	case ',':
		return l.symbolToken(COMMA), nil
	case '.':
		if isDigit(l.peek()) {
			return l.scanNumber()
		}
		if l.matchChar('.') {
			if l.matchChar('.') {
				return l.symbolToken(ELLIPSIS), nil
			}
			return l.symbolToken(CONCAT), nil
		}
		return l.symbolToken(PERIOD), nil
	case '"', '\'':
		return l.scanString()
	}

	if isDigit(ch) {
		return l.scanNumber()
	}
	if isAlpha(ch) {
		return l.scanName()
	}
	return Token{}, l.errf(InvalidToken, "unexpected character %q", ch)
}

// Scan tokenizes the entire source and returns the tokens. COMMENT tokens
// are filtered out, every other token is traced as it is recognized, and the
// result always ends with exactly one EOF token (which is never traced).
// On a lexical error no partial token list is returned.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case COMMENT:
			continue
		case EOF:
			l.tokens = append(l.tokens, tok)
			return l.tokens, nil
		}
		if l.tracer != nil {
			l.tracer(tok)
		}
		l.tokens = append(l.tokens, tok)
	}
}
