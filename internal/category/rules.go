package category

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadRules reads a rule table from a file, one rule per line:
//
//	카테고리명: keyword, keyword, keyword
//
// Blank lines and lines starting with # are skipped. Line order becomes
// table order.
func LoadRules(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	var rules []Rule
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		name, rest, found := strings.Cut(text, ":")
		if !found {
			return nil, fmt.Errorf("rules file line %d: missing ':' separator", line)
		}
		name = strings.TrimSpace(name)
		var kws []string
		for _, kw := range strings.Split(rest, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				kws = append(kws, kw)
			}
		}
		if name == "" || len(kws) == 0 {
			return nil, fmt.Errorf("rules file line %d: empty category or keyword list", line)
		}
		rules = append(rules, Rule{Name: name, Keywords: kws})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return rules, nil
}

// NewFromFile builds a classifier from a rules file, falling back to the
// built-in table when path is empty.
func NewFromFile(path string) (*Classifier, error) {
	if path == "" {
		return Default(), nil
	}
	rules, err := LoadRules(path)
	if err != nil {
		return nil, err
	}
	return NewClassifier(rules, Fallback), nil
}
