package catalog

import (
	"sort"
	"strings"

	"github.com/propgen/propgen/internal/types"
)

// Suggestion is one autocomplete candidate with its relevance score.
type Suggestion struct {
	Template *types.Template
	Score    int
	// MatchType is "name" when the partial hit the name, otherwise
	// "description"
	MatchType string
}

// Suggest scores every template against a partial string: +10 for a
// case-insensitive substring match on the name, +5 more when the partial is
// a prefix of the name, +3 for a description match. Zero-scored templates
// are excluded. Ties keep discovery order (stable sort), and the result is
// truncated to limit.
func (c *Catalog) Suggest(partial string, limit int) []Suggestion {
	snap := c.current.Load()
	partialLower := strings.ToLower(partial)

	var suggestions []Suggestion
	for _, id := range snap.order {
		t := snap.templates[id]
		nameLower := strings.ToLower(t.Name)
		descLower := strings.ToLower(t.Description)

		score := 0
		if strings.Contains(nameLower, partialLower) {
			score += 10
			if strings.HasPrefix(nameLower, partialLower) {
				score += 5
			}
		}
		if strings.Contains(descLower, partialLower) {
			score += 3
		}
		if score == 0 {
			continue
		}

		matchType := "description"
		if strings.Contains(nameLower, partialLower) {
			matchType = "name"
		}
		suggestions = append(suggestions, Suggestion{
			Template:  t,
			Score:     score,
			MatchType: matchType,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// Profile describes the company requesting recommendations. Empty fields
// contribute no score.
type Profile struct {
	Industry string
	Size     string
	Tone     string
}

// maxRecommendations caps the recommendation list length.
const maxRecommendations = 10

// Recommend scores every template against a company profile: +3.0 for an
// industry match, +2.0 for company-size membership, +1.5 for a tone match,
// plus a popularity bonus of min(usage_count*0.1, 1.0). Templates scoring
// zero are excluded; the top ten are returned in descending score order.
// The project context is accepted for forward compatibility and does not
// affect scoring yet.
func (c *Catalog) Recommend(profile Profile, projectContext map[string]string) []*types.Template {
	snap := c.current.Load()

	type scored struct {
		t     *types.Template
		score float64
	}

	// An invalid size string is ignored rather than rejected.
	size, sizeErr := types.ParseCompanySize(profile.Size)

	var ranked []scored
	for _, id := range snap.order {
		t := snap.templates[id]
		score := 0.0
		if profile.Industry != "" && string(t.Industry) == profile.Industry {
			score += 3.0
		}
		if profile.Size != "" && sizeErr == nil && t.SuitsCompanySize(size) {
			score += 2.0
		}
		if profile.Tone != "" && string(t.Tone) == profile.Tone {
			score += 1.5
		}
		if t.Usage.UsageCount > 0 {
			bonus := float64(t.Usage.UsageCount) * 0.1
			if bonus > 1.0 {
				bonus = 1.0
			}
			score += bonus
		}
		if score > 0 {
			ranked = append(ranked, scored{t: t, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}

	out := make([]*types.Template, len(ranked))
	for i, s := range ranked {
		out[i] = s.t
	}
	return out
}

// SimilarityMatch pairs a template with its similarity score against the
// reference template.
type SimilarityMatch struct {
	Template *types.Template
	Score    float64
}

// defaultSimilarLimit is used when Similar is called with a non-positive
// limit.
const defaultSimilarLimit = 5

// similarityThreshold excludes weak matches; only pairs scoring strictly
// above it are returned.
const similarityThreshold = 0.3

// Similar scores every other template against the reference: +0.3 same
// industry, +0.3 same document type, +0.2 same tone, +0.2 when the
// company-size sets intersect, capped at 1.0. Results above the threshold
// are returned in descending score order, truncated to limit. An unknown
// reference ID yields an empty list.
func (c *Catalog) Similar(id string, limit int) []SimilarityMatch {
	snap := c.current.Load()
	reference, ok := snap.templates[id]
	if !ok {
		return []SimilarityMatch{}
	}
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	var matches []SimilarityMatch
	for _, otherID := range snap.order {
		if otherID == id {
			continue
		}
		other := snap.templates[otherID]
		score := similarity(reference, other)
		if score > similarityThreshold {
			matches = append(matches, SimilarityMatch{Template: other, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func similarity(a, b *types.Template) float64 {
	score := 0.0
	if a.Industry == b.Industry {
		score += 0.3
	}
	if a.DocumentType == b.DocumentType {
		score += 0.3
	}
	if a.Tone == b.Tone {
		score += 0.2
	}
	if sizesIntersect(a, b) {
		score += 0.2
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func sizesIntersect(a, b *types.Template) bool {
	for _, size := range a.CompanySizes {
		if b.SuitsCompanySize(size) {
			return true
		}
	}
	return false
}
