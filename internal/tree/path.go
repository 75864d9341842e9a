package tree

import (
	"fmt"
	"strings"
)

// Path addresses a node inside an object tree, one key per segment.
type Path []string

// ParsePath splits a dotted key such as "business.brandColors.primary".
// Empty input and empty segments ("a..b", ".a") are rejected.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("empty path")
	}
	segs := strings.Split(s, ".")
	for _, seg := range segs {
		if strings.TrimSpace(seg) == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", s)
		}
	}
	return Path(segs), nil
}

// MustParsePath is ParsePath for compile-time constants.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String joins the segments back into dotted form.
func (p Path) String() string {
	return strings.Join(p, ".")
}
