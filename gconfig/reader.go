package gconfig

import (
	"fmt"

	"github.com/halvorsen/lllrparse"
	"gopkg.in/yaml.v3"
)

// Decode parses a grammar description document from data. Error detail
// distinguishes "missing required key", "wrong value type" and "duplicate
// rule name", rather than collapsing every decode problem into one opaque
// message.
func Decode(data []byte) (*Spec, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, lllrparse.NewGrammarFileError("invalid YAML", err)
	}
	if len(root.Content) == 0 {
		return nil, lllrparse.NewGrammarFileError("empty document", nil)
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, lllrparse.NewGrammarFileError("top-level document must be a mapping", nil)
	}

	var spec Spec
	if err := doc.Decode(&spec); err != nil {
		return nil, lllrparse.NewGrammarFileError("cannot decode grammar spec", err)
	}
	if spec.Name == "" {
		return nil, lllrparse.NewGrammarFileError(`missing required key "name"`, nil)
	}

	rulesNode, err := findMappingValue(doc, "rules")
	if err != nil {
		return nil, err
	}
	if rulesNode == nil {
		return nil, lllrparse.NewGrammarFileError(`missing required key "rules"`, nil)
	}
	order, err := decodeRuleOrder(rulesNode)
	if err != nil {
		return nil, err
	}
	spec.ruleOrder = order

	tracer().Debugf("gconfig: decoded grammar %q with %d rule head(s)", spec.Name, len(spec.Rules))
	return &spec, nil
}

func findMappingValue(mapping *yaml.Node, key string) (*yaml.Node, error) {
	if mapping.Kind != yaml.MappingNode {
		return nil, lllrparse.NewGrammarFileError("expected a mapping", nil)
	}
	var found *yaml.Node
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		k := mapping.Content[i]
		if k.Value != key {
			continue
		}
		if found != nil {
			return nil, lllrparse.NewGrammarFileError(fmt.Sprintf("duplicate key %q", key), nil)
		}
		found = mapping.Content[i+1]
	}
	return found, nil
}

// decodeRuleOrder walks the `rules` mapping node directly (rather than
// trusting the already-decoded, order-losing Go map) so that rule heads
// keep the order they had in the file, and a repeated rule-name key is
// reported precisely instead of silently overwritten the way a plain map
// decode would do it.
func decodeRuleOrder(rulesNode *yaml.Node) ([]ruleEntry, error) {
	if rulesNode.Kind != yaml.MappingNode {
		return nil, lllrparse.NewGrammarFileError(`"rules" must be a mapping of name to body`, nil)
	}
	seenHead := map[string]bool{}
	var order []ruleEntry
	for i := 0; i+1 < len(rulesNode.Content); i += 2 {
		head := rulesNode.Content[i].Value
		if seenHead[head] {
			return nil, lllrparse.NewGrammarFileError(fmt.Sprintf("duplicate rule name %q", head), nil)
		}
		seenHead[head] = true

		var bodies stringOrList
		if err := rulesNode.Content[i+1].Decode(&bodies); err != nil {
			return nil, lllrparse.NewGrammarFileError(fmt.Sprintf("rule %q has the wrong value type", head), err)
		}
		for _, b := range bodies {
			order = append(order, ruleEntry{head: head, body: splitBody(b)})
		}
	}
	return order, nil
}
