package prefilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/pikevm/literal"
	"github.com/coregx/pikevm/syntax"
)

func buildFor(t *testing.T, pattern string) Prefilter {
	t.Helper()
	n, err := syntax.Parse(pattern)
	require.NoError(t, err)
	return NewBuilder(literal.New(literal.DefaultConfig()).ExtractPrefixes(n)).Build()
}

func TestBuilder_Strategy(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"a", "memchr"},
		{"a.+", "memchr"},
		{"ab|a", "memchr"},
		{"hello", "memmem"},
		{"hello(.+)", "memmem"},
		{"foo|bar", "aho-corasick"},
		{"(ab|cd)e+", "aho-corasick"},
		{".abc", "none"},
		{"a*", "none"},
		{"a?b?", "none"},
		{"x|.", "none"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, Strategy(buildFor(t, tt.pattern)))
		})
	}
}

func TestBuilder_NilAndEmpty(t *testing.T) {
	assert.Nil(t, NewBuilder(nil).Build())
	assert.Nil(t, NewBuilder(literal.NewSeq()).Build())
	assert.Nil(t, NewBuilder(literal.NewSeq(literal.NewLiteral(nil, true))).Build())
}

func TestMemchr(t *testing.T) {
	pf := newMemchrPrefilter('a', true)
	tests := []struct {
		haystack string
		start    int
		want     int
	}{
		{"xxxayyy", 0, 3},
		{"xxxayyy", 3, 3},
		{"xxxayyy", 4, -1},
		{"", 0, -1},
		{"aaa", -1, -1},
		{"aaa", 3, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pf.Find(tt.haystack, tt.start), "Find(%q, %d)", tt.haystack, tt.start)
	}
	assert.True(t, pf.IsComplete())
	assert.Equal(t, 1, pf.LiteralLen())
	assert.Equal(t, 0, pf.HeapBytes())

	incomplete := newMemchrPrefilter('a', false)
	assert.Equal(t, 0, incomplete.LiteralLen())
}

func TestMemmem(t *testing.T) {
	needle := []byte("hello")
	pf := newMemmemPrefilter(needle, false)
	needle[0] = 'X' // the prefilter keeps its own copy

	tests := []struct {
		haystack string
		start    int
		want     int
	}{
		{"foo hello world", 0, 4},
		{"foo hello world hello", 5, 16},
		{"hell", 0, -1},
		{"", 0, -1},
		{"hello", 10, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pf.Find(tt.haystack, tt.start), "Find(%q, %d)", tt.haystack, tt.start)
	}
	assert.False(t, pf.IsComplete())
	assert.Equal(t, 0, pf.LiteralLen())
	assert.Equal(t, 5, pf.HeapBytes())

	complete := newMemmemPrefilter([]byte("abc"), true)
	assert.Equal(t, 3, complete.LiteralLen())
}

func TestAhoCorasick(t *testing.T) {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("foo"), true),
		literal.NewLiteral([]byte("bar"), true),
		literal.NewLiteral([]byte("baz"), true),
	)
	pf, err := newAhoCorasickPrefilter(seq)
	require.NoError(t, err)

	tests := []struct {
		haystack string
		start    int
		want     int
	}{
		{"xx bar foo", 0, 3},
		{"xx bar foo", 4, 7},
		{"xx baz", 0, 3},
		{"nothing here", 0, -1},
		{"", 0, -1},
		{"foo", 5, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pf.Find(tt.haystack, tt.start), "Find(%q, %d)", tt.haystack, tt.start)
	}
	assert.False(t, pf.IsComplete())
	assert.Equal(t, 0, pf.LiteralLen())
	assert.Equal(t, 9, pf.HeapBytes())
}

func TestAhoCorasick_LeftmostStart(t *testing.T) {
	// "bc" ends before "abcd" does, but "abcd" starts first
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("abcd"), true),
		literal.NewLiteral([]byte("bc"), true),
	)
	pf, err := newAhoCorasickPrefilter(seq)
	require.NoError(t, err)
	assert.Equal(t, 1, pf.Find("xabcd", 0))
}

func TestStrategy_Tracker(t *testing.T) {
	tracker := NewTracker(newMemmemPrefilter([]byte("ab"), false))
	assert.Equal(t, "memmem", Strategy(tracker))
	assert.Equal(t, "custom", Strategy(&mockPrefilter{}))
}
