// Package lexer implements the Coins tokenizer: an ordered-alternative
// scanner that turns source text into a token stream, pre-populating a
// symbol table with placeholder entries along the way. Pattern order is
// load-bearing - keyword specs are tried before the identifier spec, and
// comment/whitespace specs are tried first of all - so the scanner is a
// straight ordered list of matchers rather than a longest-match automaton.
package lexer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"

	"github.com/dekarrin/coins/internal/coins/coinserr"
	"github.com/dekarrin/coins/internal/coins/symtab"
	"github.com/dekarrin/coins/internal/coins/token"
)

// keywords maps a recognized control/type keyword spelling to its Kind. The
// spelling set is Portuguese (see SPEC_FULL.md §2).
var keywords = map[string]token.Kind{
	"inteiro":      token.Type,
	"real":         token.Type,
	"texto":        token.Type,
	"se":           token.If,
	"senao":        token.Else,
	"enquanto":     token.While,
	"procedimento": token.Procedure,
	"funcao":       token.Function,
	"retorna":      token.Return,
}

// extendedLatin classifies a rune as a letter this lexer accepts in
// identifiers beyond plain ASCII: the full Latin unicode.RangeTable (which
// spans Latin-1 Supplement and Latin Extended-A/B along with ASCII Latin)
// wrapped as a runes.Set, the same Set abstraction golang.org/x/text/runes
// uses for its transformer predicates.
var extendedLatin = runes.In(unicode.Latin)

func isIdentStart(r rune) bool {
	return r == '_' || extendedLatin.Contains(r)
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// Lexer scans one source string into tokens, recording lex errors and
// pre-populating syms as it goes.
type Lexer struct {
	src  []rune
	pos  int // index into src
	line int
	col  int

	syms *symtab.Table

	tokens []token.Token
	errs   []coinserr.Diagnostic
}

// New creates a Lexer over src. syms is the symbol table to pre-populate
// with placeholder entries for every identifier encountered; it must not be
// nil.
func New(src string, syms *symtab.Table) *Lexer {
	return &Lexer{
		src:  []rune(src),
		line: 1,
		col:  1,
		syms: syms,
	}
}

// Scan runs the full lexical pass and returns the token stream (terminated
// by an EOF token) and the list of lex errors encountered. It never returns
// a partial token for an unmatched character - a MISMATCH token is never
// emitted; unmatched characters are reported as an error and skipped
// entirely, per spec.md §4.1's "any character not matching any pattern
// produces a lex error... scanning continues from the next character."
func (l *Lexer) Scan() ([]token.Token, []coinserr.Diagnostic) {
	for {
		if !l.scanOne() {
			break
		}
	}
	l.emit(token.EOF, "", l.here(), token.NoComment)
	return l.tokens, l.errs
}

func (l *Lexer) here() token.Position {
	return token.Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() rune {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) emit(kind token.Kind, lexeme string, pos token.Position, style token.CommentStyle) {
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: lexeme, Pos: pos, Comment: style})
}

// scanOne attempts every pattern spec, in order, at the current position.
// It returns false once the input is exhausted.
func (l *Lexer) scanOne() bool {
	if l.eof() {
		return false
	}

	start := l.here()

	switch {
	case l.matchLineComment(start):
	case l.matchBlockComment(start):
	case l.matchWhitespace():
	case l.matchIdentOrKeyword(start):
	case l.matchNumber(start):
	case l.matchString(start):
	case l.matchOperatorsAndPunctuation(start):
	default:
		bad := l.advance()
		l.errs = append(l.errs, coinserr.LexErrorf(start, "unrecognized character %q", bad))
	}
	return true
}

// 1. line comment — "//" to end of line.
func (l *Lexer) matchLineComment(start token.Position) bool {
	if l.peek() != '/' || l.peekAt(1) != '/' {
		return false
	}
	var sb strings.Builder
	l.advance()
	l.advance()
	for !l.eof() && l.peek() != '\n' {
		sb.WriteRune(l.advance())
	}
	l.emit(token.Comment, sb.String(), start, token.LineComment)
	return true
}

// 2. block comment — "/* ... */", non-greedy. An unterminated block comment
// is left to the fallback rule: since the opening "/*" is not itself
// consumed as a token, scanning retries every remaining pattern at each
// subsequent position, which for a typical unterminated block yields a run
// of MISMATCH-worthy single-character lex errors (spec.md §8 boundary
// behavior).
func (l *Lexer) matchBlockComment(start token.Position) bool {
	if l.peek() != '/' || l.peekAt(1) != '*' {
		return false
	}
	save := l.pos
	saveLine, saveCol := l.line, l.col
	l.advance()
	l.advance()

	var sb strings.Builder
	closed := false
	for !l.eof() {
		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			closed = true
			break
		}
		sb.WriteRune(l.advance())
	}
	if !closed {
		// Roll back entirely; let the fallback rule report the opening
		// characters one at a time rather than swallowing the rest of the
		// file as an unterminated comment.
		l.pos, l.line, l.col = save, saveLine, saveCol
		return false
	}
	l.emit(token.Comment, sb.String(), start, token.BlockComment)
	return true
}

// 3. whitespace run — discarded, not emitted as a token.
func (l *Lexer) matchWhitespace() bool {
	if !unicode.IsSpace(l.peek()) {
		return false
	}
	for !l.eof() && unicode.IsSpace(l.peek()) {
		l.advance()
	}
	return true
}

// 4 & 5 & 6. type keywords, control keywords, and identifiers share one
// maximal-munch scan over ident characters; the keyword table is then
// consulted to decide whether the munched text is actually kind Type,
// one of the control keywords, or a plain Ident. This mirrors spec.md
// §4.1's note that keyword rules must precede the identifier rule only in
// effect - in practice a single scan plus a table lookup is simpler and
// produces the same result, since no keyword spelling is a prefix of a
// longer identifier that should itself be a keyword.
func (l *Lexer) matchIdentOrKeyword(start token.Position) bool {
	if !isIdentStart(l.peek()) {
		return false
	}
	var sb strings.Builder
	sb.WriteRune(l.advance())
	for !l.eof() && isIdentCont(l.peek()) {
		sb.WriteRune(l.advance())
	}
	text := sb.String()

	if kind, ok := keywords[text]; ok {
		l.emit(kind, text, start, token.NoComment)
		return true
	}

	l.emit(token.Ident, text, start, token.NoComment)
	l.syms.DeclareIfAbsent(text, "undefined")
	return true
}

// 7. number literal — digits, optional fractional part.
func (l *Lexer) matchNumber(start token.Position) bool {
	if !unicode.IsDigit(l.peek()) {
		return false
	}
	var sb strings.Builder
	for !l.eof() && unicode.IsDigit(l.peek()) {
		sb.WriteRune(l.advance())
	}
	if l.peek() == '.' && unicode.IsDigit(l.peekAt(1)) {
		sb.WriteRune(l.advance())
		for !l.eof() && unicode.IsDigit(l.peek()) {
			sb.WriteRune(l.advance())
		}
	}
	l.emit(token.Number, sb.String(), start, token.NoComment)
	return true
}

// 8. string literal — double-quote-delimited, no escapes, no embedded
// double-quote. An unterminated string is reported as a lex error at the
// opening quote's position and the scanner consumes through end-of-input
// (there is no later point to resynchronize against within the same line).
func (l *Lexer) matchString(start token.Position) bool {
	if l.peek() != '"' {
		return false
	}
	l.advance()
	var sb strings.Builder
	closed := false
	for !l.eof() {
		if l.peek() == '"' {
			l.advance()
			closed = true
			break
		}
		if l.peek() == '\n' {
			break
		}
		sb.WriteRune(l.advance())
	}
	if !closed {
		l.errs = append(l.errs, coinserr.LexErrorf(start, "unterminated string literal"))
		return true
	}
	l.emit(token.String, sb.String(), start, token.NoComment)
	return true
}

// 9, 10, 11, 12. operators and single-character punctuation, tried in the
// order spec.md §4.1 lists them: arithmetic, then logical, then comparison,
// then punctuation.
func (l *Lexer) matchOperatorsAndPunctuation(start token.Position) bool {
	c := l.peek()

	switch c {
	case '+', '-', '*', '/', '%':
		l.advance()
		l.emit(token.ArithOp, string(c), start, token.NoComment)
		return true
	case '&':
		if l.peekAt(1) == '&' {
			l.advance()
			l.advance()
			l.emit(token.LogicOp, "&&", start, token.NoComment)
			return true
		}
		return false
	case '|':
		if l.peekAt(1) == '|' {
			l.advance()
			l.advance()
			l.emit(token.LogicOp, "||", start, token.NoComment)
			return true
		}
		return false
	case '!':
		if l.peekAt(1) == '=' {
			l.advance()
			l.advance()
			l.emit(token.CompOp, "!=", start, token.NoComment)
			return true
		}
		l.advance()
		l.emit(token.LogicOp, "!", start, token.NoComment)
		return true
	case '=':
		if l.peekAt(1) == '=' {
			l.advance()
			l.advance()
			l.emit(token.CompOp, "==", start, token.NoComment)
			return true
		}
		l.advance()
		l.emit(token.Equals, "=", start, token.NoComment)
		return true
	case '>', '<':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			l.emit(token.CompOp, string(c)+"=", start, token.NoComment)
			return true
		}
		l.emit(token.CompOp, string(c), start, token.NoComment)
		return true
	case ';':
		l.advance()
		l.emit(token.Semicolon, ";", start, token.NoComment)
		return true
	case ',':
		l.advance()
		l.emit(token.Comma, ",", start, token.NoComment)
		return true
	case '(':
		l.advance()
		l.emit(token.LParen, "(", start, token.NoComment)
		return true
	case ')':
		l.advance()
		l.emit(token.RParen, ")", start, token.NoComment)
		return true
	case '{':
		l.advance()
		l.emit(token.LBrace, "{", start, token.NoComment)
		return true
	case '}':
		l.advance()
		l.emit(token.RBrace, "}", start, token.NoComment)
		return true
	default:
		return false
	}
}
