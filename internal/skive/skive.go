// Package skive models the five-domain SKIVE competency taxonomy and the
// ratings attached to it.
package skive

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Domain is one of the five SKIVE domains.
type Domain string

const (
	Skills    Domain = "skills"
	Knowledge Domain = "knowledge"
	Identity  Domain = "identity"
	Values    Domain = "values"
	Ethics    Domain = "ethics"
)

// AllDomains lists the domains in display order.
var AllDomains = []Domain{Skills, Knowledge, Identity, Values, Ethics}

// Score bounds for every leaf.
const (
	MinScore = 1
	MaxScore = 10
)

var (
	ErrInvalidPath = errors.New("invalid competency path")
	ErrScoreRange  = fmt.Errorf("score must be between %d and %d", MinScore, MaxScore)
)

// DisplayName returns the human-readable domain name.
func (d Domain) DisplayName() string {
	switch d {
	case Skills:
		return "Skills"
	case Knowledge:
		return "Knowledge"
	case Identity:
		return "Identity"
	case Values:
		return "Values"
	case Ethics:
		return "Ethics"
	default:
		return Title(string(d))
	}
}

// Nested reports whether leaves of d sit under a sub-category.
func (d Domain) Nested() bool {
	return d == Skills || d == Knowledge
}

// Valid reports whether d is a known domain.
func (d Domain) Valid() bool {
	for _, known := range AllDomains {
		if d == known {
			return true
		}
	}
	return false
}

// Path addresses a leaf competency: "domain.sub.leaf" for nested domains,
// "domain.leaf" for flat ones.
type Path string

// ParsePath validates s against the domain's shape.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(s, ".")
	d := Domain(parts[0])
	if !d.Valid() {
		return "", fmt.Errorf("%w: unknown domain in %q", ErrInvalidPath, s)
	}
	want := 2
	if d.Nested() {
		want = 3
	}
	if len(parts) != want {
		return "", fmt.Errorf("%w: %q needs %d segments", ErrInvalidPath, s, want)
	}
	for _, p := range parts {
		if p == "" {
			return "", fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, s)
		}
	}
	return Path(s), nil
}

// JoinPath builds a path from a domain and its remaining segments.
func JoinPath(d Domain, parts ...string) Path {
	return Path(string(d) + "." + strings.Join(parts, "."))
}

func (p Path) segments() []string {
	return strings.Split(string(p), ".")
}

// Domain returns the first segment.
func (p Path) Domain() Domain {
	return Domain(p.segments()[0])
}

// Sub returns the sub-category, or "" for flat domains.
func (p Path) Sub() string {
	seg := p.segments()
	if len(seg) == 3 {
		return seg[1]
	}
	return ""
}

// Leaf returns the last segment.
func (p Path) Leaf() string {
	seg := p.segments()
	return seg[len(seg)-1]
}

// Group returns the path without its leaf, e.g. "skills.cognitive" or "identity".
func (p Path) Group() string {
	s := string(p)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}

func (p Path) String() string { return string(p) }

// Title turns camelCase or snake_case keys into spaced title case, and
// dotted groups into "Skills Cognitive".
func Title(key string) string {
	var b strings.Builder
	prevSpace := true
	for i, r := range key {
		switch {
		case r == '_' || r == '.':
			if !prevSpace {
				b.WriteRune(' ')
			}
			prevSpace = true
			continue
		case unicode.IsUpper(r) && i > 0 && !prevSpace:
			b.WriteRune(' ')
		}
		if prevSpace {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevSpace = false
	}
	return b.String()
}
