// Package resolver maps free-text team names to the canonical names used
// by the match dataset.
package resolver

import "strings"

// Tier identifies which step of the resolution chain produced a match
type Tier string

const (
	TierExact      Tier = "exact"
	TierSubstring  Tier = "substring"
	TierNormalized Tier = "normalized"
	TierNone       Tier = "none"
)

// Resolution is the discriminated result of a lookup. Callers check Found
// rather than relying on an error; an unresolvable name is a data condition.
type Resolution struct {
	Input string
	Name  string
	Tier  Tier
}

// Found reports whether a canonical name was matched
func (r Resolution) Found() bool {
	return r.Tier != TierNone
}

// suffixes stripped during normalized matching, longest first
var strippedSuffixes = []string{" football club", " fc"}

// Resolve maps input to a canonical team name using an ordered chain:
// case-insensitive exact match, substring containment in either direction,
// then containment after stripping a trailing "FC"/"Football Club" token.
// Within a tier the first candidate in enumeration order wins; no ranking
// is attempted between equally plausible candidates.
func Resolve(input string, canonical []string) Resolution {
	notFound := Resolution{Input: input, Tier: TierNone}

	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return notFound
	}

	for _, name := range canonical {
		if strings.EqualFold(strings.TrimSpace(name), needle) {
			return Resolution{Input: input, Name: name, Tier: TierExact}
		}
	}

	for _, name := range canonical {
		candidate := strings.ToLower(strings.TrimSpace(name))
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			return Resolution{Input: input, Name: name, Tier: TierSubstring}
		}
	}

	stripped := stripTeamSuffix(needle)
	for _, name := range canonical {
		candidate := stripTeamSuffix(strings.ToLower(strings.TrimSpace(name)))
		if candidate == "" || stripped == "" {
			continue
		}
		if strings.Contains(candidate, stripped) || strings.Contains(stripped, candidate) {
			return Resolution{Input: input, Name: name, Tier: TierNormalized}
		}
	}

	return notFound
}

func stripTeamSuffix(name string) string {
	for _, suffix := range strippedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSpace(strings.TrimSuffix(name, suffix))
		}
	}
	return name
}
