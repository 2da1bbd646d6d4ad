package minilua

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	COMMENT

	// Significant newline
	EOL

	// Literals & identifiers
	RESERVED
	NUMBER
	STRING
	SYMBOL
	NAME
)

// Word identifies one of the 21 reserved words.
type Word int

const (
	AND Word = iota
	BREAK
	DO
	ELSE
	ELSEIF
	END
	FALSE
	FOR
	FUNCTION
	IF
	IN
	LOCAL
	NIL
	NOT
	OR
	REPEAT
	RETURN
	THEN
	TRUE
	UNTIL
	WHILE
)

// Symbol identifies one of the 26 operator/punctuation tokens.
type Symbol int

const (
	PLUS       Symbol = iota // "+"
	MINUS                    // "-"
	MULT                     // "*"
	DIV                      // "/"
	MOD                      // "%"
	POWER                    // "^"
	LENGTH                   // "#"
	EQ                       // "=="
	GREATER_EQ               // ">="
	LESS_EQ                  // "<="
	LESS                     // "<"
	GREATER                  // ">"
	NEQ                      // "~="
	LROUND                   // "("
	RROUND                   // ")"
	LCURLY                   // "{"
	RCURLY                   // "}"
	LSQUARE                  // "["
	RSQUARE                  // "]"
	SEMICOLON                // ";"
	COLON                    // ":"
	COMMA                    // ","
	PERIOD                   // "."
	CONCAT                   // ".."
	ELLIPSIS                 // "..."
	ASSIGN                   // "="
)

// Token is a lexical token. Type is the discriminant; Word, Symbol, Number
// and Text are only meaningful for the corresponding Type. Lexeme is the raw
// source span (empty for EOF).
type Token struct {
	Type   TokenType
	Word   Word    // reserved-word identity when Type == RESERVED
	Symbol Symbol  // symbol identity when Type == SYMBOL
	Number float64 // literal value when Type == NUMBER
	Text   string  // decoded value when Type == STRING, spelling when Type == NAME
	Lexeme string  // raw text slice
	Line   int     // 1-based
	Col    int     // 0-based column within line
}

// reservedWords maps the fixed, case-sensitive reserved-word spellings to
// their identities. Built once; never written after init.
var reservedWords = map[string]Word{
	"and":      AND,
	"break":    BREAK,
	"do":       DO,
	"else":     ELSE,
	"elseif":   ELSEIF,
	"end":      END,
	"false":    FALSE,
	"for":      FOR,
	"function": FUNCTION,
	"if":       IF,
	"in":       IN,
	"local":    LOCAL,
	"nil":      NIL,
	"not":      NOT,
	"or":       OR,
	"repeat":   REPEAT,
	"return":   RETURN,
	"then":     THEN,
	"true":     TRUE,
	"until":    UNTIL,
	"while":    WHILE,
}

// Label returns the bracketed class label used by the token trace.
func (tt TokenType) Label() string {
	switch tt {
	case EOF:
		return "[EOF]"
	case COMMENT:
		return "[COMMENT]"
	case EOL:
		return "[EOL]"
	case RESERVED:
		return "[RESERVED]"
	case NUMBER:
		return "[NUMBER]"
	case STRING:
		return "[STRING]"
	case SYMBOL:
		return "[SYMBOL]"
	case NAME:
		return "[NAME]"
	default:
		return fmt.Sprintf("TokenType(%d)", int(tt))
	}
}

func (tt TokenType) String() string {
	switch tt {
	case EOF:
		return "EOF"
	case COMMENT:
		return "COMMENT"
	case EOL:
		return "EOL"
	case RESERVED:
		return "RESERVED"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case SYMBOL:
		return "SYMBOL"
	case NAME:
		return "NAME"
	default:
		return fmt.Sprintf("TokenType(%d)", int(tt))
	}
}

var wordSpellings = [...]string{
	AND:      "and",
	BREAK:    "break",
	DO:       "do",
	ELSE:     "else",
	ELSEIF:   "elseif",
	END:      "end",
	FALSE:    "false",
	FOR:      "for",
	FUNCTION: "function",
	IF:       "if",
	IN:       "in",
	LOCAL:    "local",
	NIL:      "nil",
	NOT:      "not",
	OR:       "or",
	REPEAT:   "repeat",
	RETURN:   "return",
	THEN:     "then",
	TRUE:     "true",
	UNTIL:    "until",
	WHILE:    "while",
}

// String returns the source spelling of the reserved word.
func (w Word) String() string {
	if w < 0 || int(w) >= len(wordSpellings) {
		return fmt.Sprintf("Word(%d)", int(w))
	}
	return wordSpellings[w]
}

var symbolSpellings = [...]string{
	PLUS:       "+",
	MINUS:      "-",
	MULT:       "*",
	DIV:        "/",
	MOD:        "%",
	POWER:      "^",
	LENGTH:     "#",
	EQ:         "==",
	GREATER_EQ: ">=",
	LESS_EQ:    "<=",
	LESS:       "<",
	GREATER:    ">",
	NEQ:        "~=",
	LROUND:     "(",
	RROUND:     ")",
	LCURLY:     "{",
	RCURLY:     "}",
	LSQUARE:    "[",
	RSQUARE:    "]",
	SEMICOLON:  ";",
	COLON:      ":",
	COMMA:      ",",
	PERIOD:     ".",
	CONCAT:     "..",
	ELLIPSIS:   "...",
	ASSIGN:     "=",
}

// String returns the source spelling of the symbol.
func (s Symbol) String() string {
	if s < 0 || int(s) >= len(symbolSpellings) {
		return fmt.Sprintf("Symbol(%d)", int(s))
	}
	return symbolSpellings[s]
}
