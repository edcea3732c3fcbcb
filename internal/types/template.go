// Package types defines the template model shared by the loader, catalog,
// and CLI. Templates are immutable after construction; the catalog replaces
// instances wholesale on reload rather than mutating them in place.
package types

import (
	"fmt"
	"sort"
)

// Section is one content block within a template. It carries the
// generation instruction text used to drive drafting for that block.
type Section struct {
	// ID uniquely identifies the section within its template
	ID string `yaml:"id"`
	// Title is the human-readable section heading
	Title string `yaml:"title"`
	// Required marks sections that must appear in every generated document
	Required bool `yaml:"required"`
	// Order is the 1-based position of the section in the document
	Order int `yaml:"order"`
	// PromptTemplate is the instruction text handed to the generator
	PromptTemplate string `yaml:"prompt_template"`
}

func (s Section) validate() error {
	if s.ID == "" {
		return fmt.Errorf("section id cannot be empty")
	}
	if s.Title == "" {
		return fmt.Errorf("section %q: title cannot be empty", s.ID)
	}
	if s.PromptTemplate == "" {
		return fmt.Errorf("section %q: prompt_template cannot be empty", s.ID)
	}
	if s.Order < 1 {
		return fmt.Errorf("section %q: order must be >= 1", s.ID)
	}
	return nil
}

// UsageStats is usage telemetry attached to a template. It is written by
// the hosting application over the template's lifetime, never by the catalog.
type UsageStats struct {
	CreatedDate  string  `yaml:"created_date"`
	LastModified string  `yaml:"last_modified"`
	UsageCount   int     `yaml:"usage_count"`
	SuccessRate  float64 `yaml:"success_rate"`
}

// Template is a reusable document blueprint: taxonomy metadata plus an
// ordered list of sections.
type Template struct {
	// ID is the globally unique template identifier
	ID string
	// Name is the display name shown in pickers and suggestions
	Name string
	// Description summarizes what the template produces
	Description string
	// Version is the template author's revision string
	Version string
	// Industry is the business sector the template targets
	Industry Industry
	// Category is a free-form grouping scoped within the industry
	Category string
	// DocumentType is the kind of document the template produces
	DocumentType DocumentType
	// CompanySizes lists every organization size the template suits
	CompanySizes []CompanySize
	// Tone is the writing style the template drives toward
	Tone Tone
	// Complexity indicates expected effort (defaults to medium)
	Complexity Complexity
	// EstimatedTimeMinutes is the expected completion time (defaults to 30)
	EstimatedTimeMinutes int
	// Sections is the non-empty ordered list of content blocks
	Sections []Section
	// Variants references sibling template IDs
	Variants []string
	// Prerequisites lists free-form preconditions for using the template
	Prerequisites []string
	// ComplianceRequirements lists regulatory constraints the template covers
	ComplianceRequirements []string
	// Usage holds externally maintained telemetry
	Usage UsageStats
}

// NewTemplate validates the structural invariants and returns the template.
// Violations are rejected, never silently corrected: the ID, name, and
// section list must be non-empty, section orders must form the consecutive
// sequence 1..N, and at least one section must be required.
func NewTemplate(t Template) (*Template, error) {
	if t.ID == "" {
		return nil, fmt.Errorf("template_id cannot be empty")
	}
	if t.Name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if len(t.Sections) == 0 {
		return nil, fmt.Errorf("template must have at least one section")
	}
	if len(t.CompanySizes) == 0 {
		return nil, fmt.Errorf("company_sizes cannot be empty")
	}
	for _, s := range t.Sections {
		if err := s.validate(); err != nil {
			return nil, err
		}
	}

	orders := make([]int, len(t.Sections))
	for i, s := range t.Sections {
		orders[i] = s.Order
	}
	sort.Ints(orders)
	for i, o := range orders {
		if o != i+1 {
			return nil, fmt.Errorf("section orders must be consecutive starting from 1, got %v", orders)
		}
	}

	required := false
	for _, s := range t.Sections {
		if s.Required {
			required = true
			break
		}
	}
	if !required {
		return nil, fmt.Errorf("template must have at least one required section")
	}

	if t.Complexity == "" {
		t.Complexity = ComplexityMedium
	}
	if t.EstimatedTimeMinutes <= 0 {
		t.EstimatedTimeMinutes = 30
	}
	if t.Variants == nil {
		t.Variants = []string{}
	}
	if t.Prerequisites == nil {
		t.Prerequisites = []string{}
	}
	if t.ComplianceRequirements == nil {
		t.ComplianceRequirements = []string{}
	}

	return &t, nil
}

// SectionsByOrder returns the sections sorted by their order field.
func (t *Template) SectionsByOrder() []Section {
	out := make([]Section, len(t.Sections))
	copy(out, t.Sections)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// RequiredSections returns only the required sections, in order.
func (t *Template) RequiredSections() []Section {
	var out []Section
	for _, s := range t.SectionsByOrder() {
		if s.Required {
			out = append(out, s)
		}
	}
	return out
}

// OptionalSections returns only the optional sections, in order.
func (t *Template) OptionalSections() []Section {
	var out []Section
	for _, s := range t.SectionsByOrder() {
		if !s.Required {
			out = append(out, s)
		}
	}
	return out
}

// SectionByID returns the section with the given ID, or nil if absent.
func (t *Template) SectionByID(id string) *Section {
	for i := range t.Sections {
		if t.Sections[i].ID == id {
			return &t.Sections[i]
		}
	}
	return nil
}

// SuitsCompanySize reports whether the template targets the given size.
func (t *Template) SuitsCompanySize(size CompanySize) bool {
	for _, s := range t.CompanySizes {
		if s == size {
			return true
		}
	}
	return false
}

// HasVariants reports whether the template references sibling templates.
func (t *Template) HasVariants() bool { return len(t.Variants) > 0 }

// Metadata is the reduced-field projection of a template used by preview
// panes and the catalog export.
type Metadata struct {
	ID                     string   `json:"template_id"`
	Name                   string   `json:"name"`
	Description            string   `json:"description"`
	Industry               string   `json:"industry"`
	Category               string   `json:"category"`
	DocumentType           string   `json:"document_type"`
	CompanySizes           []string `json:"company_sizes"`
	Tone                   string   `json:"tone"`
	Complexity             string   `json:"complexity_level"`
	EstimatedTimeMinutes   int      `json:"estimated_time_minutes"`
	SectionCount           int      `json:"section_count"`
	RequiredSections       int      `json:"required_sections"`
	OptionalSections       int      `json:"optional_sections"`
	Prerequisites          []string `json:"prerequisites"`
	ComplianceRequirements []string `json:"compliance_requirements"`
	Variants               []string `json:"variants"`
}

// Metadata builds the reduced-field projection for this template.
func (t *Template) Metadata() Metadata {
	required := 0
	for _, s := range t.Sections {
		if s.Required {
			required++
		}
	}
	sizes := make([]string, len(t.CompanySizes))
	for i, s := range t.CompanySizes {
		sizes[i] = string(s)
	}
	return Metadata{
		ID:                     t.ID,
		Name:                   t.Name,
		Description:            t.Description,
		Industry:               string(t.Industry),
		Category:               t.Category,
		DocumentType:           string(t.DocumentType),
		CompanySizes:           sizes,
		Tone:                   string(t.Tone),
		Complexity:             string(t.Complexity),
		EstimatedTimeMinutes:   t.EstimatedTimeMinutes,
		SectionCount:           len(t.Sections),
		RequiredSections:       required,
		OptionalSections:       len(t.Sections) - required,
		Prerequisites:          t.Prerequisites,
		ComplianceRequirements: t.ComplianceRequirements,
		Variants:               t.Variants,
	}
}
