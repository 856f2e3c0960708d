// Package permission implements capability checks for the current session
// and the gate decision used to hide mutating affordances from principals
// that lack them. The permission set is queried, never mutated; its origin
// is the login response, carried on the persisted session.
package permission

// Set is the capability strings the current session holds.
type Set map[string]struct{}

// NewSet builds a set from the session's granted permission strings.
func NewSet(permissions []string) Set {
	s := make(Set, len(permissions))
	for _, p := range permissions {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether the set holds the given capability. Pure and
// synchronous; callers re-invoke it whenever the session may have changed,
// since the set holds no state beyond its contents.
func (s Set) Has(permission string) bool {
	_, ok := s[permission]
	return ok
}

// Choose is the gate decision. It is exhaustive over its inputs:
//
//   - the set holds the permission: children, true
//   - it does not, fallback enabled:  fallbackElem, true
//   - it does not, fallback disabled: zero value, false
//
// No other outcome is possible. The boolean tells the caller whether there
// is anything to render at all.
func Choose[T any](s Set, permission string, children T, fallback bool, fallbackElem T) (T, bool) {
	if s.Has(permission) {
		return children, true
	}
	if fallback {
		return fallbackElem, true
	}
	var zero T
	return zero, false
}
