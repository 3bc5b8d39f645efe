package model

import (
	"fmt"
	"sort"
	"strings"
)

// Set is an unordered collection of unique lines.
type Set map[string]struct{}

func NewSet(lines ...string) Set {
	set := make(Set, len(lines))
	for _, line := range lines {
		set.Add(line)
	}
	return set
}

func (s Set) Add(line string)      { s[line] = struct{}{} }
func (s Set) Has(line string) bool { _, ok := s[line]; return ok }
func (s Set) Len() int             { return len(s) }

// Merge adds every line of other to s.
func (s Set) Merge(other Set) {
	for line := range other {
		s[line] = struct{}{}
	}
}

// Sorted returns the lines in ascending byte-wise order.
func (s Set) Sorted() []string {
	lines := make([]string, 0, len(s))
	for line := range s {
		lines = append(lines, line)
	}
	sort.Strings(lines)
	return lines
}

func (s Set) String() string {
	return fmt.Sprintf("{%s}", strings.Join(s.Sorted(), ", "))
}
