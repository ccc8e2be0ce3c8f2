// Package pikevm provides a small regular expression engine built on a Pike VM.
//
// Patterns are parsed into a syntax tree (package syntax), compiled to
// Thompson NFA bytecode (package nfa) and executed by a Pike VM that tracks
// capture groups. Every search runs in O(len(program) * len(subject)) time.
//
// The pattern language is deliberately small: ASCII letters and digits match
// themselves, '.' matches any character, parentheses group and capture,
// '|' separates alternatives and '*', '+', '?' repeat the preceding item.
// Whitespace in patterns is ignored.
//
// Matches are leftmost-longest: the match that starts first wins, and among
// matches starting there the longest. The greedy flag does not change the
// overall span; it decides which capture offsets are recorded when several
// paths produce the same span.
//
// Basic usage:
//
//	re, err := pikevm.Compile("(23*)4(5+)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m := re.Search("a22222333345555555b", true)
//	fmt.Println(m.Captures) // [23333 5555555]
//
// Advanced usage:
//
//	config := pikevm.DefaultConfig()
//	config.EnablePrefilter = false
//	re, err := pikevm.CompileWithConfig("(a|b)*c", config)
package pikevm

import (
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/coregx/pikevm/literal"
	"github.com/coregx/pikevm/nfa"
	"github.com/coregx/pikevm/prefilter"
	"github.com/coregx/pikevm/syntax"
)

// SyntaxError is returned by Compile for patterns outside the grammar.
// Use errors.Is with the syntax.Err* values to classify it.
type SyntaxError = syntax.Error

// Regex represents a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := pikevm.MustCompile("hel+o")
//	if re.MatchString("hello world") {
//	    println("matched!")
//	}
type Regex struct {
	pattern string
	ast     *syntax.Node
	prog    *nfa.Program
	vm      *nfa.PikeVM
	greedy  bool

	// prefilter is nil when the pattern has no finite prefix set or
	// prefiltering is disabled.
	prefilter *prefilter.Tracker

	// literalOnly is set when the pattern matches exactly one literal and has
	// no groups, so the prefilter alone answers searches.
	literalOnly bool

	stats searchStats
}

// Compile compiles a pattern with the default configuration.
// Returns a *SyntaxError if the pattern is invalid.
//
// Example:
//
//	re, err := pikevm.Compile("(a|b)+c")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern is invalid.
//
// Example:
//
//	var digits = pikevm.MustCompile("(0|1|2|3|4|5|6|7|8|9)+")
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("pikevm: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with a custom configuration.
// Returns a *ConfigError for an invalid configuration and a *SyntaxError for
// an invalid pattern.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	parser := syntax.NewParser(syntax.ParserConfig{MaxNestingDepth: config.MaxNestingDepth})
	ast, err := parser.Parse(pattern)
	if err != nil {
		logger.Debug("pattern rejected", zap.String("pattern", pattern), zap.Error(err))
		return nil, err
	}

	prog := nfa.Compile(ast)
	if err := prog.Validate(); err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "pikevm: compiled %q", pattern))
	}

	re := &Regex{
		pattern: pattern,
		ast:     ast,
		prog:    prog,
		greedy:  config.Greedy,
	}

	var opts []nfa.Option
	if config.EnablePrefilter {
		extractor := literal.New(literal.ExtractorConfig{
			MaxLiterals:   config.MaxLiterals,
			MaxLiteralLen: config.MaxLiteralLen,
		})
		if pf := prefilter.NewBuilder(extractor.ExtractPrefixes(ast)).Build(); pf != nil {
			re.prefilter = prefilter.NewTracker(pf)
			re.literalOnly = pf.IsComplete() && prog.NumGroups == 0
			opts = append(opts, nfa.WithPrefilter(re.prefilter))
		}
	}
	re.vm = nfa.NewPikeVM(prog, opts...)

	logger.Debug("pattern compiled",
		zap.String("pattern", pattern),
		zap.Int("instructions", prog.Len()),
		zap.Int("groups", prog.NumGroups),
		zap.String("prefilter", prefilter.Strategy(re.prefilterOrNil())),
		zap.Bool("literal_only", re.literalOnly),
	)
	return re, nil
}

// prefilterOrNil avoids handing a typed nil *Tracker to an interface.
func (r *Regex) prefilterOrNil() prefilter.Prefilter {
	if r.prefilter == nil {
		return nil
	}
	return r.prefilter
}

// Search finds the leftmost-longest match of re in subject.
func Search(re *Regex, subject string, greedy bool) Match {
	return re.Search(subject, greedy)
}

// Search finds the leftmost-longest match in subject. greedy selects the
// split priority used to record captures.
func (r *Regex) Search(subject string, greedy bool) Match {
	return r.SearchAt(subject, 0, greedy)
}

// SearchAt is like Search but only considers matches starting at or after
// byte offset at.
func (r *Regex) SearchAt(subject string, at int, greedy bool) Match {
	r.stats.searches.Inc()

	var start, end int
	var slots []int
	if r.literalOnly {
		r.stats.literalSearches.Inc()
		pos := -1
		if at >= 0 && at <= len(subject) {
			pos = r.prefilter.Find(subject, at)
		}
		if pos < 0 {
			return noMatch()
		}
		start, end = pos, pos+r.prefilter.LiteralLen()
	} else {
		m := r.vm.SearchAt(subject, at, greedy)
		if m == nil {
			return noMatch()
		}
		start, end, slots = m.Start, m.End, m.Slots
	}

	r.stats.matches.Inc()
	if r.prefilter != nil {
		r.prefilter.ConfirmMatch()
	}
	return newMatch(subject, start, end, slots)
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.Search(s, r.greedy).Matched
}

// FindString returns the text of the leftmost-longest match in s, or "" if
// there is none. Use FindStringIndex to tell an empty match from no match.
func (r *Regex) FindString(s string) string {
	return r.Search(s, r.greedy).String()
}

// FindStringIndex returns the [start, end) byte offsets of the
// leftmost-longest match in s, or nil if there is none.
func (r *Regex) FindStringIndex(s string) []int {
	m := r.Search(s, r.greedy)
	if !m.Matched {
		return nil
	}
	return []int{m.Start, m.End}
}

// FindStringSubmatch returns the text of the match followed by the text of
// every capturing group, by group number. A group that did not participate
// yields "". Returns nil if there is no match.
//
// Example:
//
//	re := pikevm.MustCompile("(23*)4(5+)")
//	match := re.FindStringSubmatch("a22222333345555555b")
//	// match = ["2333345555555", "23333", "5555555"]
func (r *Regex) FindStringSubmatch(s string) []string {
	m := r.Search(s, r.greedy)
	if !m.Matched {
		return nil
	}
	out := make([]string, 1+r.prog.NumGroups)
	out[0] = m.String()
	for k := 1; k <= r.prog.NumGroups; k++ {
		out[k], _ = m.Group(k)
	}
	return out
}

// FindStringSubmatchIndex returns index pairs for the match and every
// capturing group: result[2*k:2*k+2] is group k, with -1 for a group that
// did not participate. Returns nil if there is no match.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	m := r.Search(s, r.greedy)
	if !m.Matched {
		return nil
	}
	out := make([]int, 2+2*r.prog.NumGroups)
	out[0], out[1] = m.Start, m.End
	for k := 1; k <= r.prog.NumGroups; k++ {
		out[2*k], out[2*k+1], _ = m.GroupIndex(k)
	}
	return out
}

// FindAllString returns successive non-overlapping matches in s.
// If n >= 0, it returns at most n matches.
//
// Example:
//
//	re := pikevm.MustCompile("a+")
//	matches := re.FindAllString("a aa aaa", -1)
//	// matches = ["a", "aa", "aaa"]
func (r *Regex) FindAllString(s string, n int) []string {
	var out []string
	r.allMatches(s, n, func(m Match) {
		out = append(out, m.String())
	})
	return out
}

// FindAllStringIndex is like FindAllString but returns byte offsets.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	var out [][]int
	r.allMatches(s, n, func(m Match) {
		out = append(out, []int{m.Start, m.End})
	})
	return out
}

// FindAllStringSubmatch is the all-matches version of FindStringSubmatch.
func (r *Regex) FindAllStringSubmatch(s string, n int) [][]string {
	var out [][]string
	r.allMatches(s, n, func(m Match) {
		row := make([]string, 1+r.prog.NumGroups)
		row[0] = m.String()
		for k := 1; k <= r.prog.NumGroups; k++ {
			row[k], _ = m.Group(k)
		}
		out = append(out, row)
	})
	return out
}

// CountString returns the number of non-overlapping matches in s.
// If n >= 0, it counts at most n matches.
func (r *Regex) CountString(s string, n int) int {
	count := 0
	r.allMatches(s, n, func(Match) { count++ })
	return count
}

// allMatches calls deliver for up to n non-overlapping matches (all if n < 0).
// An empty match directly after the previous match is skipped.
func (r *Regex) allMatches(s string, n int, deliver func(Match)) {
	if n == 0 {
		return
	}
	found := 0
	prevEnd := -1
	for pos := 0; pos <= len(s); {
		m := r.SearchAt(s, pos, r.greedy)
		if !m.Matched {
			return
		}
		if m.Start == m.End && m.Start == prevEnd {
			// step one character past the rejected empty match
			pos = m.Start + nextRuneWidth(s, m.Start)
			continue
		}
		deliver(m)
		found++
		if n > 0 && found >= n {
			return
		}
		prevEnd = m.End
		if m.End > pos {
			pos = m.End
		} else {
			pos = m.End + nextRuneWidth(s, m.End)
		}
	}
}

func nextRuneWidth(s string, pos int) int {
	if pos >= len(s) {
		return 1
	}
	_, w := utf8.DecodeRuneInString(s[pos:])
	return w
}

// String returns the source text used to compile the pattern.
func (r *Regex) String() string {
	return r.pattern
}

// NumSubexp returns the number of capturing groups.
func (r *Regex) NumSubexp() int {
	return r.prog.NumGroups
}

// Program returns the compiled bytecode. It must not be modified.
func (r *Regex) Program() *nfa.Program {
	return r.prog
}

// AST returns the parsed syntax tree. It must not be modified.
func (r *Regex) AST() *syntax.Node {
	return r.ast
}

// PrefilterStrategy names the prefilter in use: "memchr", "memmem",
// "aho-corasick" or "none".
func (r *Regex) PrefilterStrategy() string {
	return prefilter.Strategy(r.prefilterOrNil())
}

// Stats returns a snapshot of the search counters.
func (r *Regex) Stats() Stats {
	return r.stats.snapshot(r.prefilter)
}

// ResetStats resets the search counters to zero.
func (r *Regex) ResetStats() {
	r.stats.reset(r.prefilter)
}
