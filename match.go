package pikevm

// Match is the result of a search.
//
// Start and End are byte offsets of the overall match in the subject.
// Captures lists the text of every capturing group that took part in the
// match, in group order; a group that did not participate has no entry, so
// use Group to address groups by number.
//
// Example:
//
//	m := pikevm.MustCompile("(a)|(b)").Search("b", true)
//	// m.Captures = ["b"]
//	// m.Group(1) = "", false
//	// m.Group(2) = "b", true
type Match struct {
	Matched  bool
	Start    int
	End      int
	Captures []string

	subject string
	slots   []int
}

// noMatch is the zero result. Offsets are -1.
func noMatch() Match {
	return Match{Start: -1, End: -1}
}

func newMatch(subject string, start, end int, slots []int) Match {
	m := Match{
		Matched: true,
		Start:   start,
		End:     end,
		subject: subject,
		slots:   slots,
	}
	for i := 0; i+1 < len(slots); i += 2 {
		if slots[i] >= 0 && slots[i+1] >= 0 {
			m.Captures = append(m.Captures, subject[slots[i]:slots[i+1]])
		}
	}
	return m
}

// String returns the matched text, or "" if there was no match.
func (m Match) String() string {
	if !m.Matched {
		return ""
	}
	return m.subject[m.Start:m.End]
}

// NumGroups returns the number of capturing groups of the pattern.
func (m Match) NumGroups() int {
	return len(m.slots) / 2
}

// Group returns the text captured by group k (1-based).
// ok is false if the group did not participate or does not exist.
func (m Match) Group(k int) (string, bool) {
	start, end, ok := m.GroupIndex(k)
	if !ok {
		return "", false
	}
	return m.subject[start:end], true
}

// GroupIndex returns the byte offsets of group k (1-based).
// ok is false if the group did not participate or does not exist.
func (m Match) GroupIndex(k int) (start, end int, ok bool) {
	i := 2 * (k - 1)
	if !m.Matched || k < 1 || i+1 >= len(m.slots) {
		return -1, -1, false
	}
	start, end = m.slots[i], m.slots[i+1]
	if start < 0 || end < 0 {
		return -1, -1, false
	}
	return start, end, true
}
