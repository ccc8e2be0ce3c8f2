package syntax

import (
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// ParserConfig configures parsing limits.
type ParserConfig struct {
	// MaxNestingDepth limits how deeply groups may nest.
	// Default: 1000
	MaxNestingDepth int
}

// DefaultParserConfig returns the default parser configuration.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		MaxNestingDepth: 1000,
	}
}

// Parser turns pattern text into a syntax tree.
// A Parser holds only configuration and may be used concurrently.
type Parser struct {
	config ParserConfig
}

// NewParser creates a parser with the given configuration.
func NewParser(config ParserConfig) *Parser {
	if config.MaxNestingDepth <= 0 {
		config.MaxNestingDepth = DefaultParserConfig().MaxNestingDepth
	}
	return &Parser{config: config}
}

// Parse parses pattern with the default configuration.
func Parse(pattern string) (*Node, error) {
	return NewParser(DefaultParserConfig()).Parse(pattern)
}

// Parse parses pattern into a syntax tree.
// The whole pattern must match the grammar; on failure the result is an
// *Error and no tree is returned.
func (p *Parser) Parse(pattern string) (*Node, error) {
	st := &parseState{
		src:      pattern,
		maxDepth: p.config.MaxNestingDepth,
	}
	n, err := st.parseAlt()
	if err != nil {
		return nil, err
	}
	// parseAlt only stops early at an unmatched ')'
	if c, ok := st.peek(); ok {
		if c == ')' {
			return nil, st.errorf(ErrUnexpectedParen)
		}
		return nil, st.invalidChar()
	}
	return n, nil
}

type parseState struct {
	src      string
	pos      int
	depth    int
	maxDepth int
}

func (st *parseState) errorf(cause error) *Error {
	return &Error{Pattern: st.src, Pos: st.pos, Err: cause}
}

func (st *parseState) invalidChar() *Error {
	r, _ := utf8.DecodeRuneInString(st.src[st.pos:])
	return st.errorf(errors.Wrapf(ErrInvalidChar, "%q", r))
}

// peek skips whitespace and returns the next byte without consuming it.
func (st *parseState) peek() (byte, bool) {
	for st.pos < len(st.src) && isSpace(st.src[st.pos]) {
		st.pos++
	}
	if st.pos >= len(st.src) {
		return 0, false
	}
	return st.src[st.pos], true
}

// parseAlt parses concat ('|' concat)* and folds the branches to the right.
func (st *parseState) parseAlt() (*Node, error) {
	first, err := st.parseConcat()
	if err != nil {
		return nil, err
	}
	branches := []*Node{first}
	for {
		c, ok := st.peek()
		if !ok || c != '|' {
			break
		}
		st.pos++
		next, err := st.parseConcat()
		if err != nil {
			return nil, err
		}
		branches = append(branches, next)
	}
	return foldRight(branches, Alt), nil
}

// parseConcat parses one or more repeats up to '|', ')' or the end of input.
// The loop replaces the grammar's right recursion so long literal runs do not
// grow the stack.
func (st *parseState) parseConcat() (*Node, error) {
	var items []*Node
	for {
		c, ok := st.peek()
		if !ok || c == '|' || c == ')' {
			break
		}
		item, err := st.parseRepeat()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		if c, ok := st.peek(); ok && c == ')' && st.depth == 0 {
			return nil, st.errorf(ErrUnexpectedParen)
		}
		return nil, st.errorf(ErrMissingExpression)
	}
	return foldRight(items, Concat), nil
}

func (st *parseState) parseRepeat() (*Node, error) {
	n, err := st.parseSingle()
	if err != nil {
		return nil, err
	}
	c, ok := st.peek()
	if !ok || !isQuantifier(c) {
		return n, nil
	}
	st.pos++
	switch c {
	case '*':
		n = Star(n)
	case '+':
		n = Plus(n)
	default:
		n = Quest(n)
	}
	if c, ok := st.peek(); ok && isQuantifier(c) {
		return nil, st.errorf(ErrMissingRepeatArgument)
	}
	return n, nil
}

func (st *parseState) parseSingle() (*Node, error) {
	c, _ := st.peek()
	switch {
	case c == '(':
		if st.depth >= st.maxDepth {
			return nil, st.errorf(ErrNestingDepth)
		}
		st.depth++
		st.pos++
		inner, err := st.parseAlt()
		if err != nil {
			return nil, err
		}
		if c, ok := st.peek(); !ok || c != ')' {
			return nil, st.errorf(ErrMissingParen)
		}
		st.pos++
		st.depth--
		return Group(inner), nil
	case c == '.':
		st.pos++
		return Any(), nil
	case isAlnum(c):
		st.pos++
		return Lit(rune(c)), nil
	case isQuantifier(c):
		return nil, st.errorf(ErrMissingRepeatArgument)
	default:
		return nil, st.invalidChar()
	}
}

func foldRight(items []*Node, join func(left, right *Node) *Node) *Node {
	n := items[len(items)-1]
	for i := len(items) - 2; i >= 0; i-- {
		n = join(items[i], n)
	}
	return n
}

func isQuantifier(c byte) bool {
	return c == '*' || c == '+' || c == '?'
}

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
