package mitre

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Rule binds a lowercase keyword to the ATT&CK technique ids it implies.
type Rule struct {
	Keyword    string
	Techniques []string
}

// RuleTable is the immutable keyword -> technique mapping used for
// rule-based technique extraction. It is loaded once at process start and
// iterated in the order the rules were declared in the source file, so
// matching results are deterministic across runs. Concurrent reads need
// no synchronization.
type RuleTable struct {
	rules []Rule
}

// LoadRules reads a rule table from a JSON file of the form
// {"keyword": ["T1003", ...], ...}. The declared key order is preserved,
// which is why the object is walked with a streaming decoder instead of
// being unmarshaled into a map. A missing or malformed file is an error;
// callers treat it as fatal at startup.
func LoadRules(path string) (*RuleTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule file %s: %w", path, err)
	}
	defer f.Close()

	table, err := ParseRules(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule file %s: %w", path, err)
	}

	logrus.Infof("Loaded %d MITRE mapping rules from %s", table.Len(), path)
	return table, nil
}

// ParseRules decodes an ordered keyword -> technique-list object.
func ParseRules(r io.Reader) (*RuleTable, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read rule document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("rule document must be a JSON object, got %v", tok)
	}

	var rules []Rule
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read rule keyword: %w", err)
		}
		keyword, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("rule keyword must be a string, got %v", keyTok)
		}

		var techniques []string
		if err := dec.Decode(&techniques); err != nil {
			return nil, fmt.Errorf("invalid technique list for keyword %q: %w", keyword, err)
		}
		if keyword == "" || len(techniques) == 0 {
			return nil, fmt.Errorf("rule %q has an empty keyword or technique list", keyword)
		}

		rules = append(rules, Rule{
			Keyword:    strings.ToLower(keyword),
			Techniques: techniques,
		})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read end of rule document: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("rule document contains no rules")
	}

	return &RuleTable{rules: rules}, nil
}

// Len returns the number of rules in the table.
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Rules returns the rules in declared order.
func (t *RuleTable) Rules() []Rule {
	return t.rules
}
