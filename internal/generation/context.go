// Package generation builds the prompt context handed to the
// document-generation collaborator: the ordered sections to render plus the
// parent template's taxonomy fields. No LLM calls happen here.
package generation

import (
	"errors"
	"fmt"

	"github.com/propgen/propgen/internal/catalog"
	"github.com/propgen/propgen/internal/types"
)

// ErrTemplateNotFound is returned when the requested template ID is not
// loaded in the catalog.
var ErrTemplateNotFound = errors.New("template not found")

// SectionPrompt is one section to render, with the instruction text that
// drives generation for it.
type SectionPrompt struct {
	ID       string
	Title    string
	Order    int
	Required bool
	Prompt   string
}

// Context carries everything the prompt builder needs for one document.
type Context struct {
	TemplateID   string
	TemplateName string
	Industry     string
	Tone         string
	DocumentType string
	CompanySizes []string
	Sections     []SectionPrompt
}

// Build resolves a template and assembles its generation context. With no
// explicit section IDs the required sections are used; otherwise the given
// subset is rendered in template order, silently skipping IDs the template
// does not define.
func Build(cat *catalog.Catalog, templateID string, sectionIDs []string) (*Context, error) {
	t := cat.Get(templateID)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}

	var sections []types.Section
	if len(sectionIDs) == 0 {
		sections = t.RequiredSections()
	} else {
		wanted := make(map[string]bool, len(sectionIDs))
		for _, id := range sectionIDs {
			wanted[id] = true
		}
		for _, s := range t.SectionsByOrder() {
			if wanted[s.ID] {
				sections = append(sections, s)
			}
		}
	}

	prompts := make([]SectionPrompt, len(sections))
	for i, s := range sections {
		prompts[i] = SectionPrompt{
			ID:       s.ID,
			Title:    s.Title,
			Order:    s.Order,
			Required: s.Required,
			Prompt:   s.PromptTemplate,
		}
	}

	sizes := make([]string, len(t.CompanySizes))
	for i, s := range t.CompanySizes {
		sizes[i] = string(s)
	}

	return &Context{
		TemplateID:   t.ID,
		TemplateName: t.Name,
		Industry:     string(t.Industry),
		Tone:         string(t.Tone),
		DocumentType: string(t.DocumentType),
		CompanySizes: sizes,
		Sections:     prompts,
	}, nil
}
