// errors.go: lexical error values and caret-snippet rendering
//
// A *LexError carries the 1-based line, 0-based column, a code from the
// fixed taxonomy, and a message. `WrapErrorWithSource` recognizes *LexError
// and returns a new error whose message is a multi-line snippet with up to
// one line of context on each side and a caret under the offending column:
//
//	LEXICAL ERROR at 2:6: '~' must be followed by '='
//
//	   1 | local a = 1
//	   2 | if a ~ b then
//	     |      ^
//	   3 | end
//
// Any other error is returned unchanged.
package minilua

import (
	"fmt"
	"strings"
)

// ErrorCode classifies a lexical failure.
type ErrorCode int

const (
	// InvalidToken: unrecognized leading character, or '~' not followed by '='.
	InvalidToken ErrorCode = iota
	// InvalidNumber: malformed numeric literal.
	InvalidNumber
	// InvalidEscape: unsupported character after '\' inside a string literal.
	InvalidEscape
	// UnterminatedLiteral: end of input before a closing string delimiter.
	UnterminatedLiteral
)

func (c ErrorCode) String() string {
	switch c {
	case InvalidToken:
		return "invalid token"
	case InvalidNumber:
		return "invalid number"
	case InvalidEscape:
		return "invalid escape"
	case UnterminatedLiteral:
		return "unterminated literal"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// LexError is a fatal lexical error. The scan that produced it returns no
// partial token list.
type LexError struct {
	Line int // 1-based
	Col  int // 0-based
	Code ErrorCode
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. It recognizes lexer errors and leaves
// other errors untouched.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name (typically a
// file path) included in the header.
func WrapErrorWithName(err error, srcName string, src string) error {
	if e, ok := err.(*LexError); ok {
		// Col is 0-based; render as 1-based.
		return fmt.Errorf("%s", prettyErrorString(src, "LEXICAL ERROR", srcName, e.Line, e.Col+1, e.Msg))
	}
	return err
}

// prettyErrorString builds a Python-like snippet with a header and a caret.
// It shows at most one previous and one next line when available.
// Coordinates are treated as 1-based and clamped to the source bounds.
func prettyErrorString(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
