package compose

import (
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/sitefleet/internal/tree"
)

// LoadAnswersFile reads a YAML mapping of dotted question paths to string
// values, e.g.
//
//	business.name: Acme Plumbing
//	contact.phone: (555) 123-4567
//
// Keys that do not name a question are rejected. Answers come back in
// question order so that validation reports the same field an interactive
// session would.
func LoadAnswersFile(path string) (Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file: %w", err)
	}
	return ParseAnswers(data)
}

// ParseAnswers is LoadAnswersFile on an in-memory document.
func ParseAnswers(data []byte) (Answers, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing answers: %w", err)
	}

	var unknown []string
	for key := range raw {
		p, err := tree.ParsePath(key)
		if err != nil {
			return nil, fmt.Errorf("answer key %q: %w", key, err)
		}
		if _, ok := lookupQuestion(p); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown answer keys: %v", unknown)
	}

	var out Answers
	for _, q := range Questions {
		if v, ok := raw[q.Path.String()]; ok {
			out = append(out, Answer{Path: q.Path, Value: v})
		}
	}
	return out, nil
}
