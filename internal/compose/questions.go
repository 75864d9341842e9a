package compose

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/agentx-labs/sitefleet/internal/siteconfig"
	"github.com/agentx-labs/sitefleet/internal/tree"
)

// Question is one interactive prompt bound to a configuration path.
type Question struct {
	Path    tree.Path
	Label   string
	Default string
	// Check returns a non-nil error describing why a value is rejected.
	// Nil accepts anything.
	Check func(string) error
}

var (
	statePattern = regexp.MustCompile(`^[A-Z]{2}$`)
	phonePattern = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	colorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
)

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

func matches(re *regexp.Regexp, reason string) func(string) error {
	return func(s string) error {
		if !re.MatchString(s) {
			return errors.New(reason)
		}
		return nil
	}
}

// Questions is the ordered prompt table.
var Questions = []Question{
	{Path: tree.MustParsePath("business.name"), Label: "Business name", Check: required("business name")},
	{Path: tree.MustParsePath("business.slogan"), Label: "Business slogan"},
	{Path: tree.MustParsePath("business.description"), Label: "Business description"},
	{Path: tree.MustParsePath("business.industry"), Label: "Industry", Default: siteconfig.DefaultIndustry},
	{Path: tree.MustParsePath("business.city"), Label: "City", Check: required("city")},
	{Path: tree.MustParsePath("business.state"), Label: "State (2-letter code)", Check: matches(statePattern, "use a two-letter uppercase state code, e.g. CA")},
	{Path: tree.MustParsePath("business.zip"), Label: "ZIP code", Check: required("ZIP code")},
	{Path: tree.MustParsePath("contact.phone"), Label: "Phone number", Check: matches(phonePattern, "use the format (555) 123-4567")},
	{Path: tree.MustParsePath("contact.email"), Label: "Email address", Check: matches(emailPattern, "enter a valid email address")},
	{Path: tree.MustParsePath("contact.address"), Label: "Street address", Check: required("address")},
	{Path: tree.MustParsePath("business.brandColors.primary"), Label: "Primary brand color", Default: siteconfig.DefaultPrimaryColor, Check: matches(colorPattern, "use a hex color such as #0D6EFD")},
	{Path: tree.MustParsePath("business.brandColors.secondary"), Label: "Secondary brand color", Default: siteconfig.DefaultSecondaryColor, Check: matches(colorPattern, "use a hex color such as #6C757D")},
	{Path: tree.MustParsePath("business.brandColors.accent"), Label: "Accent brand color", Default: siteconfig.DefaultAccentColor, Check: matches(colorPattern, "use a hex color such as #FFC107")},
}

// lookupQuestion finds the question bound to p.
func lookupQuestion(p tree.Path) (Question, bool) {
	key := p.String()
	for _, q := range Questions {
		if q.Path.String() == key {
			return q, true
		}
	}
	return Question{}, false
}

// Validate checks every answer against its question's predicate and returns
// the first rejection. Answers for paths without a question are accepted
// here and left to schema validation.
func Validate(answers Answers) error {
	for _, a := range answers {
		q, ok := lookupQuestion(a.Path)
		if !ok || q.Check == nil {
			continue
		}
		if err := q.Check(a.Value); err != nil {
			return &ValidationError{Field: a.Path.String(), Reason: err.Error()}
		}
	}
	return nil
}
