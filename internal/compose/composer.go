package compose

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agentx-labs/sitefleet/internal/profile"
	"github.com/agentx-labs/sitefleet/internal/siteconfig"
	"github.com/agentx-labs/sitefleet/internal/tree"
)

// ErrUnknownProfile is returned when the requested profile is not registered.
var ErrUnknownProfile = errors.New("unknown profile")

// ValidationError reports a rejected answer or an incomplete composed
// document. Field is the dotted path of the offending value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Reason)
}

// Answer is one operator-supplied value.
type Answer struct {
	Path  tree.Path
	Value string
}

// Answers is an ordered answer set. Later entries win over earlier ones for
// the same path.
type Answers []Answer

// Lookup returns the last value recorded for the dotted key.
func (a Answers) Lookup(key string) (string, bool) {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i].Path.String() == key {
			return a[i].Value, true
		}
	}
	return "", false
}

// AnswerFunc supplies the answer set for a selected profile.
type AnswerFunc func(p *profile.Profile) (Answers, error)

// Fixed returns an AnswerFunc that always yields answers.
func Fixed(answers Answers) AnswerFunc {
	return func(*profile.Profile) (Answers, error) { return answers, nil }
}

// Composer merges defaults, a profile, and answers into a SiteConfig.
type Composer struct {
	Profiles *profile.Registry
}

// Compose validates answers, merges defaults ← profile ← answers, and decodes
// the result. Nothing is merged if any answer is rejected.
func (c *Composer) Compose(profileName string, answers Answers) (*siteconfig.SiteConfig, error) {
	p, err := c.Profiles.Get(profileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownProfile, err)
	}
	if err := Validate(answers); err != nil {
		return nil, err
	}

	base, err := defaultsTree()
	if err != nil {
		return nil, err
	}
	overlay := tree.NewObject()
	for _, a := range answers {
		if err := overlay.Set(a.Path, tree.String(a.Value)); err != nil {
			return nil, fmt.Errorf("applying answer %s: %w", a.Path, err)
		}
	}

	merged := tree.MergeAll(base, p.Fragment, overlay)
	if err := normalize(merged); err != nil {
		return nil, err
	}

	doc := merged.Interface()
	res, err := siteconfig.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("validating composed config: %w", err)
	}
	if !res.Valid {
		if len(res.Issues) == 0 {
			return nil, &ValidationError{Reason: "schema validation failed"}
		}
		issue := res.Issues[0]
		return nil, &ValidationError{Field: issue.Field(), Reason: issue.Message}
	}
	return siteconfig.Decode(doc)
}

var schemaTypePath = tree.MustParsePath("seo.schema.type")

// normalize forces seo.schema.type into the accepted set.
func normalize(doc *tree.Value) error {
	if v, ok := doc.Get(schemaTypePath); ok {
		if s, isString := v.Scalar().(string); isString && siteconfig.IsSchemaType(s) {
			return nil
		}
	}
	return doc.Set(schemaTypePath, tree.String(siteconfig.DefaultSchemaType))
}

// defaultsTree lifts siteconfig.Defaults into a tree.
func defaultsTree() (*tree.Value, error) {
	data, err := json.Marshal(siteconfig.Defaults())
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding defaults: %w", err)
	}
	return tree.FromAny(raw)
}
