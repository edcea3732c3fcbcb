package catalog

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/propgen/propgen/internal/types"
)

// Get returns the template with the given ID, or nil when it is not loaded.
// Not-found is never an error on the query surface.
func (c *Catalog) Get(id string) *types.Template {
	return c.current.Load().templates[id]
}

// All returns every loaded template in discovery order.
func (c *Catalog) All() []*types.Template {
	snap := c.current.Load()
	return resolve(snap, snap.order)
}

// ByIndustry returns the templates for an industry; unknown keys yield an
// empty list.
func (c *Catalog) ByIndustry(industry string) []*types.Template {
	snap := c.current.Load()
	return resolve(snap, snap.industry[industry])
}

// ByCategory returns the templates under a composite industry:category key.
func (c *Catalog) ByCategory(industry, category string) []*types.Template {
	snap := c.current.Load()
	return resolve(snap, snap.category[industry+":"+category])
}

// ByDocumentType returns the templates producing the given document type.
func (c *Catalog) ByDocumentType(documentType string) []*types.Template {
	snap := c.current.Load()
	return resolve(snap, snap.documentType[documentType])
}

// ByTone returns the templates with the given tone.
func (c *Catalog) ByTone(tone string) []*types.Template {
	snap := c.current.Load()
	return resolve(snap, snap.tone[tone])
}

// ByComplexity returns the templates with the given complexity level.
func (c *Catalog) ByComplexity(complexity string) []*types.Template {
	snap := c.current.Load()
	return resolve(snap, snap.complexity[complexity])
}

// ByCompanySize returns the templates supporting the given company size.
func (c *Catalog) ByCompanySize(size string) []*types.Template {
	snap := c.current.Load()
	return resolve(snap, snap.companySize[size])
}

func resolve(snap *snapshot, ids []string) []*types.Template {
	out := make([]*types.Template, 0, len(ids))
	for _, id := range ids {
		if t, ok := snap.templates[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// AvailableIndustries returns the sorted industries present in the catalog.
func (c *Catalog) AvailableIndustries() []string {
	return sortedKeys(c.current.Load().industry)
}

// CategoriesForIndustry returns the sorted distinct categories within an
// industry.
func (c *Catalog) CategoriesForIndustry(industry string) []string {
	snap := c.current.Load()
	seen := make(map[string]bool)
	for _, t := range resolve(snap, snap.industry[industry]) {
		seen[t.Category] = true
	}
	return sortedSet(seen)
}

// AllDocumentTypes returns the sorted document types present in the catalog.
func (c *Catalog) AllDocumentTypes() []string {
	return sortedKeys(c.current.Load().documentType)
}

// AllTones returns the sorted tones present in the catalog.
func (c *Catalog) AllTones() []string {
	return sortedKeys(c.current.Load().tone)
}

// AllComplexityLevels returns the sorted complexity levels present in the
// catalog.
func (c *Catalog) AllComplexityLevels() []string {
	return sortedKeys(c.current.Load().complexity)
}

// AllCompanySizes returns the sorted company sizes present in the catalog.
func (c *Catalog) AllCompanySizes() []string {
	return sortedKeys(c.current.Load().companySize)
}

// AllCategories returns the sorted distinct categories across all
// industries.
func (c *Catalog) AllCategories() []string {
	snap := c.current.Load()
	seen := make(map[string]bool)
	for _, id := range snap.order {
		seen[snap.templates[id].Category] = true
	}
	return sortedSet(seen)
}

// FilterOptions enumerates every selectable value per dimension, used to
// populate picker controls.
type FilterOptions struct {
	Industries       []string `json:"industries"`
	DocumentTypes    []string `json:"document_types"`
	Tones            []string `json:"tones"`
	ComplexityLevels []string `json:"complexity_levels"`
	CompanySizes     []string `json:"company_sizes"`
	Categories       []string `json:"categories"`
}

// FilterOptions returns all available filter values.
func (c *Catalog) FilterOptions() FilterOptions {
	return FilterOptions{
		Industries:       c.AvailableIndustries(),
		DocumentTypes:    c.AllDocumentTypes(),
		Tones:            c.AllTones(),
		ComplexityLevels: c.AllComplexityLevels(),
		CompanySizes:     c.AllCompanySizes(),
		Categories:       c.AllCategories(),
	}
}

// Metadata returns the reduced-field projection for a template, or nil when
// the ID is not loaded.
func (c *Catalog) Metadata(id string) *types.Metadata {
	t := c.Get(id)
	if t == nil {
		return nil
	}
	m := t.Metadata()
	return &m
}

// Filter narrows a search. A zero-valued field means "skip this filter";
// present fields conjoin with logical AND. SearchText matches
// case-insensitively as a substring of the name or description.
type Filter struct {
	Industry     string
	Category     string
	DocumentType string
	Tone         string
	Complexity   string
	CompanySize  string
	SearchText   string
}

// Search returns the templates matching every present filter, in discovery
// order. An invalid company size yields an empty result set rather than an
// error.
func (c *Catalog) Search(f Filter) []*types.Template {
	snap := c.current.Load()

	var size types.CompanySize
	if f.CompanySize != "" {
		parsed, err := types.ParseCompanySize(f.CompanySize)
		if err != nil {
			return []*types.Template{}
		}
		size = parsed
	}

	text := strings.ToLower(f.SearchText)

	results := make([]*types.Template, 0)
	for _, id := range snap.order {
		t := snap.templates[id]
		if f.Industry != "" && string(t.Industry) != f.Industry {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.DocumentType != "" && string(t.DocumentType) != f.DocumentType {
			continue
		}
		if f.Tone != "" && string(t.Tone) != f.Tone {
			continue
		}
		if f.Complexity != "" && string(t.Complexity) != f.Complexity {
			continue
		}
		if f.CompanySize != "" && !t.SuitsCompanySize(size) {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(t.Name), text) &&
			!strings.Contains(strings.ToLower(t.Description), text) {
			continue
		}
		results = append(results, t)
	}
	return results
}

// Count returns the number of templates matching the filter. A zero-valued
// filter counts everything.
func (c *Catalog) Count(f Filter) int {
	return len(c.Search(f))
}

// Criteria expresses an advanced multi-valued search: OR within each list
// field, AND across fields. Nil or zero-valued fields are skipped.
type Criteria struct {
	Industries     []string
	DocumentTypes  []string
	CompanySizes   []string
	MaxComplexity  string
	MaxTimeMinutes int
	// HasVariants filters on variant presence when non-nil
	HasVariants *bool
	// RequiredSectionsOnly keeps templates whose every section is required
	RequiredSectionsOnly bool
}

// SearchByCriteria returns the templates matching all present criteria.
// Any invalid company size in the list yields an empty result set.
func (c *Catalog) SearchByCriteria(cr Criteria) []*types.Template {
	snap := c.current.Load()

	var sizes []types.CompanySize
	for _, raw := range cr.CompanySizes {
		size, err := types.ParseCompanySize(raw)
		if err != nil {
			return []*types.Template{}
		}
		sizes = append(sizes, size)
	}

	maxOrdinal := 0
	if cr.MaxComplexity != "" {
		maxOrdinal = types.Complexity(cr.MaxComplexity).Ordinal()
	}

	results := make([]*types.Template, 0)
	for _, id := range snap.order {
		t := snap.templates[id]
		if len(cr.Industries) > 0 && !containsString(cr.Industries, string(t.Industry)) {
			continue
		}
		if len(cr.DocumentTypes) > 0 && !containsString(cr.DocumentTypes, string(t.DocumentType)) {
			continue
		}
		if len(sizes) > 0 && !suitsAny(t, sizes) {
			continue
		}
		if maxOrdinal > 0 && t.Complexity.Ordinal() > maxOrdinal {
			continue
		}
		if cr.MaxTimeMinutes > 0 && t.EstimatedTimeMinutes > cr.MaxTimeMinutes {
			continue
		}
		if cr.HasVariants != nil && t.HasVariants() != *cr.HasVariants {
			continue
		}
		if cr.RequiredSectionsOnly && len(t.OptionalSections()) > 0 {
			continue
		}
		results = append(results, t)
	}
	return results
}

// Family returns a template plus every variant that resolves in the
// catalog. Dangling variant references are silently skipped; they are
// already flagged by relationship validation. Unknown IDs yield an empty
// list.
func (c *Catalog) Family(id string) []*types.Template {
	snap := c.current.Load()
	base, ok := snap.templates[id]
	if !ok {
		return []*types.Template{}
	}
	family := []*types.Template{base}
	for _, variantID := range base.Variants {
		if variant, ok := snap.templates[variantID]; ok {
			family = append(family, variant)
		}
	}
	return family
}

// FuzzySearch ranks templates against a free-text query over name,
// description, and category. Ordering follows the fuzzy match ranking; an
// empty query returns everything in discovery order.
func (c *Catalog) FuzzySearch(query string) []*types.Template {
	snap := c.current.Load()
	all := resolve(snap, snap.order)
	if query == "" {
		return all
	}

	haystack := make([]string, len(all))
	for i, t := range all {
		haystack[i] = t.Name + " " + t.Description + " " + t.Category
	}

	matches := fuzzy.Find(query, haystack)
	results := make([]*types.Template, 0, len(matches))
	for _, m := range matches {
		results = append(results, all[m.Index])
	}
	return results
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func suitsAny(t *types.Template, sizes []types.CompanySize) bool {
	for _, size := range sizes {
		if t.SuitsCompanySize(size) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSet(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
