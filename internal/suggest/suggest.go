// Package suggest provides fuzzy matching for CLI flag, command and preset
// suggestions using Levenshtein distance.
package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type scored struct {
	value string
	score int
}

// rank returns candidates within the edit budget, closest first. Ties keep
// the order of valid.
func rank(unknown string, valid []string, normalize func(string) string, maxDist int) []scored {
	var candidates []scored
	for _, v := range valid {
		dist := levenshtein.ComputeDistance(unknown, normalize(v))
		if dist <= maxDist {
			candidates = append(candidates, scored{v, dist})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score < candidates[j].score
	})
	return candidates
}

// Flag finds similar flags from a list of valid flags.
// Returns at most three suggestions sorted by similarity (best first).
func Flag(unknown string, validFlags []string) []string {
	unknown = strings.TrimLeft(unknown, "-")
	strip := func(s string) string { return strings.TrimLeft(s, "-") }

	candidates := rank(unknown, validFlags, strip, max(3, len(unknown)/2))

	var result []string
	for i := 0; i < len(candidates) && i < 3; i++ {
		result = append(result, candidates[i].value)
	}
	return result
}

// Closest returns the single best match for unknown among valid, or "" when
// nothing is within two edits. Matching is case-insensitive.
func Closest(unknown string, valid []string) string {
	unknown = strings.ToLower(strings.TrimSpace(unknown))
	if unknown == "" {
		return ""
	}
	candidates := rank(unknown, valid, strings.ToLower, 2)
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0].value
}

// CommonFlagAliases maps commonly attempted flags to their correct names
var CommonFlagAliases = map[string]string{
	"min":      "--min-price or --min-stock",
	"max":      "--max-price or --max-stock",
	"from":     "--min-price or --min-stock",
	"to":       "--max-price or --max-stock",
	"qty":      "--stock",
	"quantity": "--stock",
	"cost":     "--price",
	"amount":   "--price",

	"cat":   "--category, -c",
	"query": "--search, -q",
	"q":     "--search, -q",
	"desc":  "--reverse",
	"order": "--sort and --reverse",

	"force":   "(not supported - use confirmation prompt)",
	"confirm": "(not supported - use confirmation prompt)",
	"yes":     "(not supported - use confirmation prompt)",

	"version": "use: starterkit version",
	"v":       "use: starterkit version",
}

// GetFlagHint returns a hint for a commonly misused flag
func GetFlagHint(flag string) string {
	flag = strings.TrimLeft(flag, "-")
	flag = strings.ToLower(flag)

	if hint, ok := CommonFlagAliases[flag]; ok {
		return hint
	}
	return ""
}
