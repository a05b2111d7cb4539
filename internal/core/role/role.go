// Package role defines the user roles recognized by the permission
// engine. A user holds a set of roles; a capability is granted when any
// held role grants it (union semantics, never intersection).
package role

import (
	"fmt"
	"strings"
)

// Role identifies a functional role in the freight pipeline.
type Role string

const (
	Admin       Role = "admin"
	Sales       Role = "sales"
	Pricing     Role = "pricing"
	Ops         Role = "ops"
	Collections Role = "collections"
	Finance     Role = "finance"
)

// All lists every recognized role.
var All = []Role{Admin, Sales, Pricing, Ops, Collections, Finance}

// Valid reports whether r is a recognized role.
func Valid(r Role) bool {
	for _, known := range All {
		if r == known {
			return true
		}
	}
	return false
}

// Set is a collection of roles held by a user. The zero value is an
// empty set that grants nothing.
type Set []Role

// Parse converts a comma-separated role list (as stored in the users
// table) into a Set. Unknown names are rejected.
func Parse(s string) (Set, error) {
	if strings.TrimSpace(s) == "" {
		return Set{}, nil
	}
	var set Set
	for _, part := range strings.Split(s, ",") {
		r := Role(strings.TrimSpace(part))
		if !Valid(r) {
			return nil, fmt.Errorf("unknown role %q", part)
		}
		if !set.Has(r) {
			set = append(set, r)
		}
	}
	return set, nil
}

// Has reports whether the set contains r.
func (s Set) Has(r Role) bool {
	for _, held := range s {
		if held == r {
			return true
		}
	}
	return false
}

// HasAny reports whether the set contains any of the given roles.
func (s Set) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Any reports whether any held role satisfies the predicate. This is
// the single dispatch point for union semantics: capabilities are
// predicates over a role, resolved with Any rather than per-role
// branching.
func (s Set) Any(pred func(Role) bool) bool {
	for _, held := range s {
		if pred(held) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the set grants administrator capability.
func (s Set) IsAdmin() bool {
	return s.Has(Admin)
}

// String renders the set in storage form.
func (s Set) String() string {
	parts := make([]string, len(s))
	for i, r := range s {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}
