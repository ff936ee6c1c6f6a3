package automaton

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Rule holds the neighbour counts that give birth to a dead cell and keep a
// live one alive. Counts are unbounded: how many neighbours a tile can have
// depends on the tiling.
type Rule struct {
	Birth   []int
	Survive []int
}

// DefaultRule is Conway's B3/S23.
var DefaultRule = Rule{Birth: []int{3}, Survive: []int{2, 3}}

// ParseRule reads two comma separated lists of counts, e.g. "3" and "2,3".
// An empty list is allowed and matches nothing.
func ParseRule(birth, survive string) (Rule, error) {
	b, err := parseCounts(birth)
	if err != nil {
		return Rule{}, fmt.Errorf("birth: %w", err)
	}
	s, err := parseCounts(survive)
	if err != nil {
		return Rule{}, fmt.Errorf("survive: %w", err)
	}
	return Rule{Birth: b, Survive: s}, nil
}

func parseCounts(list string) ([]int, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}

	var counts []int
	for _, f := range strings.Split(list, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q in %q", ErrMalformedRule, f, list)
		}
		if !slices.Contains(counts, n) {
			counts = append(counts, n)
		}
	}
	slices.Sort(counts)
	return counts, nil
}

// Alive decides a cell's next state from its current state and tally.
func (me Rule) Alive(alive bool, tally int) bool {
	if alive {
		return slices.Contains(me.Survive, tally)
	}
	return slices.Contains(me.Birth, tally)
}

// String gives the rule in B/S notation with comma separated counts.
func (me Rule) String() string {
	return "B" + joinCounts(me.Birth) + "/S" + joinCounts(me.Survive)
}

func joinCounts(counts []int) string {
	parts := make([]string, len(counts))
	for i, n := range counts {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
