package pikevm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch_NoMatch(t *testing.T) {
	m := MustCompile("(x)").Search("abc", true)
	assert.False(t, m.Matched)
	assert.Equal(t, -1, m.Start)
	assert.Equal(t, -1, m.End)
	assert.Empty(t, m.Captures)
	assert.Equal(t, "", m.String())
	assert.Equal(t, 0, m.NumGroups())

	g, ok := m.Group(1)
	assert.False(t, ok)
	assert.Equal(t, "", g)
}

func TestMatch_Groups(t *testing.T) {
	m := MustCompile("(a)|(b)").Search("xb", true)
	assert.True(t, m.Matched)
	assert.Equal(t, "b", m.String())
	assert.Equal(t, 2, m.NumGroups())
	assert.Equal(t, []string{"b"}, m.Captures)

	g, ok := m.Group(1)
	assert.False(t, ok)
	assert.Equal(t, "", g)

	g, ok = m.Group(2)
	assert.True(t, ok)
	assert.Equal(t, "b", g)

	start, end, ok := m.GroupIndex(2)
	assert.True(t, ok)
	assert.Equal(t, 1, start)
	assert.Equal(t, 2, end)

	for _, k := range []int{-1, 0, 3} {
		_, ok := m.Group(k)
		assert.False(t, ok, "group %d", k)
		start, end, ok := m.GroupIndex(k)
		assert.False(t, ok, "group %d", k)
		assert.Equal(t, -1, start)
		assert.Equal(t, -1, end)
	}
}

func TestMatch_EmptyCapture(t *testing.T) {
	m := MustCompile("b(a*)").Search("bc", true)
	assert.True(t, m.Matched)
	assert.Equal(t, []string{""}, m.Captures)

	g, ok := m.Group(1)
	assert.True(t, ok)
	assert.Equal(t, "", g)
}

func TestMatch_NestedGroups(t *testing.T) {
	m := MustCompile("((a)(b))c").Search("zabc", true)
	assert.Equal(t, 1, m.Start)
	assert.Equal(t, 4, m.End)
	assert.Equal(t, []string{"ab", "a", "b"}, m.Captures)
}

func TestMatch_MultibyteOffsets(t *testing.T) {
	m := MustCompile("(.)x").Search("héx", true)
	assert.True(t, m.Matched)
	assert.Equal(t, 1, m.Start)
	assert.Equal(t, 4, m.End)
	assert.Equal(t, []string{"é"}, m.Captures)
}
