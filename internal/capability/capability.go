// Package capability models the label sets attached to catalog entries
// (tags, best-for use cases, key features) and the two ways they are matched:
// membership and case-insensitive substring search.
package capability

import "strings"

// State distinguishes a label set that was never supplied from one that was
// supplied empty and from one that carries labels.
type State int

const (
	Absent State = iota
	Empty
	Populated
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Empty:
		return "empty"
	case Populated:
		return "populated"
	default:
		return "unknown"
	}
}

// Labels is an ordered set of labels. A nil Labels is Absent, a non-nil
// zero-length Labels is Empty. Order is kept for display only.
type Labels []string

// State reports whether the set is absent, empty, or populated.
func (l Labels) State() State {
	switch {
	case l == nil:
		return Absent
	case len(l) == 0:
		return Empty
	default:
		return Populated
	}
}

// Has reports whether label is a member of the set, ignoring case.
func (l Labels) Has(label string) bool {
	for _, v := range l {
		if strings.EqualFold(v, label) {
			return true
		}
	}
	return false
}

// Mentions reports whether fragment is a substring of any label.
// An empty fragment never matches.
func (l Labels) Mentions(fragment string) bool {
	if fragment == "" {
		return false
	}
	needle := strings.ToLower(fragment)
	for _, v := range l {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// MentionsAny reports whether any of the fragments occurs inside any label.
func (l Labels) MentionsAny(fragments ...string) bool {
	for _, f := range fragments {
		if l.Mentions(f) {
			return true
		}
	}
	return false
}

// Overlaps reports whether the two sets share at least one label. Labels
// must match exactly, case included. Either side being absent or empty means
// no overlap.
func (l Labels) Overlaps(other Labels) bool {
	for _, v := range l {
		for _, o := range other {
			if v == o {
				return true
			}
		}
	}
	return false
}

// Profile groups the three label sets of a catalog entry so that a named
// capability can be checked against all of them at once.
type Profile struct {
	Tags        Labels
	BestFor     Labels
	KeyFeatures Labels
}

// Satisfies reports whether the capability is a tag, or occurs inside a
// best-for entry, or occurs inside a key-feature entry.
func (p Profile) Satisfies(capability string) bool {
	return p.Tags.Has(capability) ||
		p.BestFor.Mentions(capability) ||
		p.KeyFeatures.Mentions(capability)
}

// SatisfiesAll reports whether every capability is satisfied. An empty list
// is trivially satisfied.
func (p Profile) SatisfiesAll(capabilities []string) bool {
	for _, c := range capabilities {
		if !p.Satisfies(c) {
			return false
		}
	}
	return true
}
