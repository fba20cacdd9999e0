package gconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// stringOrList decodes a YAML value that may be either a bare scalar or a
// sequence of scalars into a slice, always -- the shape the grammar file
// format uses throughout for `rules` and `tokens` entries ("string or
// [string]").
type stringOrList []string

func (s *stringOrList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var one string
		if err := value.Decode(&one); err != nil {
			return err
		}
		*s = stringOrList{one}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		*s = stringOrList(many)
		return nil
	default:
		return fmt.Errorf("expected a scalar or a sequence of scalars, found %v", value.Kind)
	}
}

// Spec is the decoded shape of a grammar description file, matching the
// grammar-file format exactly: name, optional description, optional start symbol,
// required rules, and optional tokens/ignore/actions maps.
type Spec struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	StartSymbol string                  `yaml:"start_symbol"`
	Rules       map[string]stringOrList `yaml:"rules"`
	Tokens      map[string]stringOrList `yaml:"tokens"`
	Ignore      map[string]string       `yaml:"ignore"`
	Actions     map[string]string       `yaml:"actions"`

	// ruleOrder is populated during decode (see Decode) so
	// that Build can add rules in the order their heads first appeared in
	// the file rather than in Go's unspecified map iteration order --
	// required for the start-symbol default ("first rule head") and for
	// deterministic symbol-ID assignment.
	ruleOrder []ruleEntry
}

// ruleEntry is one (head, body) pair as it appeared in the file, body
// already split on whitespace. An empty body denotes ε.
type ruleEntry struct {
	head string
	body []string
}

func splitBody(s string) []string {
	var out []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}
