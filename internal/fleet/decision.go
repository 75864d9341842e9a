package fleet

import "fmt"

// Decision is what happens to one synced path.
type Decision int

const (
	// Create copies a template file the site does not have yet.
	Create Decision = iota
	// SkipIdentical leaves a file whose bytes already match the template.
	SkipIdentical
	// ConflictSkip reports a differing file without touching it (dry run).
	ConflictSkip
	// ConflictOverwrite replaces a differing file with the template version.
	ConflictOverwrite
)

func (d Decision) String() string {
	switch d {
	case Create:
		return "create"
	case SkipIdentical:
		return "skip-identical"
	case ConflictSkip:
		return "conflict-skip"
	case ConflictOverwrite:
		return "conflict-overwrite"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Conflict reports whether the site's file differed from the template.
func (d Decision) Conflict() bool {
	return d == ConflictSkip || d == ConflictOverwrite
}

// Writes reports whether the decision copies the template file when not in
// dry-run mode.
func (d Decision) Writes() bool {
	return d == Create || d == ConflictOverwrite
}

// Decide classifies one path from whether each side exists and whether
// their bytes are equal. Any byte difference, line endings included, is a
// conflict. ok is false when the template lacks the path, in which case the
// site's copy must be left alone.
func Decide(srcExists, dstExists, equal, dryRun bool) (d Decision, ok bool) {
	switch {
	case !srcExists:
		return 0, false
	case !dstExists:
		return Create, true
	case equal:
		return SkipIdentical, true
	case dryRun:
		return ConflictSkip, true
	default:
		return ConflictOverwrite, true
	}
}
