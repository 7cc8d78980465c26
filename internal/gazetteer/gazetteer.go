// Package gazetteer resolves informal location mentions ("near Boston",
// "Austin area") against a closed, embedded city vocabulary. Absence of a
// match is expressed as nil, never as an error.
package gazetteer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	_ "embed"

	"gopkg.in/yaml.v3"

	"dealfinder/internal/model"
)

//go:embed metros.yaml
var metrosYAML []byte

type entry struct {
	City  string `yaml:"city"`
	State string `yaml:"state"`
	Metro string `yaml:"metro"`
}

var (
	metros map[string]entry
	// Keys sorted longest-first so the most specific key wins when several
	// are substrings of the same clause ("atlanta" over "la").
	orderedKeys []string
	keyPatterns map[string]*regexp.Regexp

	prepositionPattern = regexp.MustCompile(`\b(?:in|near|around)\s+([a-z][a-z\s'-]{2,})`)
	areaPattern        = regexp.MustCompile(`\b([a-z][a-z\s'-]{2,})\s+area\b`)
	clauseSplitter     = regexp.MustCompile(`[,.;]`)
)

func init() {
	if err := yaml.Unmarshal(metrosYAML, &metros); err != nil {
		panic(fmt.Sprintf("gazetteer: bad embedded metros table: %v", err))
	}
	orderedKeys = make([]string, 0, len(metros))
	keyPatterns = make(map[string]*regexp.Regexp, len(metros))
	for k := range metros {
		orderedKeys = append(orderedKeys, k)
		// Word-boundary match keeps short keys like "la" from firing inside
		// "plant" or "atlanta".
		keyPatterns[k] = regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
	}
	sort.Slice(orderedKeys, func(i, j int) bool {
		if len(orderedKeys[i]) != len(orderedKeys[j]) {
			return len(orderedKeys[i]) > len(orderedKeys[j])
		}
		return orderedKeys[i] < orderedKeys[j]
	})
}

func toMarket(e entry) *model.Market {
	city, state, metro := e.City, e.State, e.Metro
	return &model.Market{City: &city, State: &state, Metro: &metro}
}

func matchKey(s string) (entry, bool) {
	s = strings.TrimSpace(s)
	if e, ok := metros[s]; ok {
		return e, true
	}
	for _, k := range orderedKeys {
		if keyPatterns[k].MatchString(s) {
			return metros[k], true
		}
	}
	return entry{}, false
}

// ResolveMarket maps an informal location mention to its canonical
// city/state/metro triple. Returns nil when no registered key is found; the
// vocabulary is closed and small by design.
func ResolveMarket(text string) *model.Market {
	t := strings.ToLower(text)

	// Explicit "in/near/around <city> (area)" phrase.
	m := prepositionPattern.FindStringSubmatch(t)
	if m == nil {
		m = areaPattern.FindStringSubmatch(t)
	}
	if m != nil {
		key := strings.TrimSuffix(strings.TrimSpace(m[1]), " area")
		if e, ok := matchKey(key); ok {
			return toMarket(e)
		}
	}

	// Clause-by-clause fallback.
	for _, chunk := range clauseSplitter.Split(t, -1) {
		if e, ok := matchKey(chunk); ok {
			return toMarket(e)
		}
	}

	// Whole-text last resort.
	if e, ok := matchKey(t); ok {
		return toMarket(e)
	}
	return nil
}
