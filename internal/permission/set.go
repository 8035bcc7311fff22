package permission

import "sort"

// WildcardCode is how a wildcard grant is represented to API clients.
// Internally the wildcard is a tagged state on Set, not a member code, so a
// real permission named "*" cannot collide with it.
const WildcardCode = "*"

// Set is a user's resolved permission grants.
//
// A Set is immutable after construction. The zero value is an empty explicit
// set: an authenticated user with no grants, which denies every check. That
// state is distinct from "not cached".
type Set struct {
	wildcard bool
	codes    map[string]struct{}
}

// Wildcard returns the set granting all permissions. Used for system accounts.
func Wildcard() Set {
	return Set{wildcard: true}
}

// NewSet builds an explicit set from permission codes. Duplicates collapse.
func NewSet(codes ...string) Set {
	m := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if c == "" {
			continue
		}
		m[c] = struct{}{}
	}
	return Set{codes: m}
}

func (s Set) IsWildcard() bool { return s.wildcard }

// Has reports whether the set grants the given permission code.
func (s Set) Has(code string) bool {
	if s.wildcard {
		return true
	}
	if code == "" {
		return false
	}
	_, ok := s.codes[code]
	return ok
}

// Len is the number of explicit codes; zero for the wildcard set.
func (s Set) Len() int { return len(s.codes) }

// Codes returns the sorted code list for API responses. The wildcard set
// serializes as ["*"].
func (s Set) Codes() []string {
	if s.wildcard {
		return []string{WildcardCode}
	}
	out := make([]string, 0, len(s.codes))
	for c := range s.codes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
