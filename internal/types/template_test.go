package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTemplate() Template {
	return Template{
		ID:           "tech_project_proposal",
		Name:         "Software Project Proposal",
		Description:  "Proposal for custom software development projects",
		Version:      "1.0",
		Industry:     IndustryTechnology,
		Category:     "software_development",
		DocumentType: DocProposal,
		CompanySizes: []CompanySize{SizeStartup, SizeSmall},
		Tone:         ToneFormalCorporate,
		Sections: []Section{
			{ID: "summary", Title: "Executive Summary", Required: true, Order: 1, PromptTemplate: "Write an executive summary for the project."},
			{ID: "scope", Title: "Scope", Required: false, Order: 2, PromptTemplate: "Describe the scope and boundaries of the work."},
		},
	}
}

func TestNewTemplate_Valid(t *testing.T) {
	tmpl, err := NewTemplate(validTemplate())
	require.NoError(t, err)
	assert.Equal(t, "tech_project_proposal", tmpl.ID)

	// Optional fields default
	assert.Equal(t, ComplexityMedium, tmpl.Complexity)
	assert.Equal(t, 30, tmpl.EstimatedTimeMinutes)
	assert.NotNil(t, tmpl.Variants)
	assert.NotNil(t, tmpl.Prerequisites)
	assert.NotNil(t, tmpl.ComplianceRequirements)
}

func TestNewTemplate_Invariants(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Template)
		wantErr string
	}{
		{
			name:    "empty id",
			mutate:  func(tm *Template) { tm.ID = "" },
			wantErr: "template_id cannot be empty",
		},
		{
			name:    "empty name",
			mutate:  func(tm *Template) { tm.Name = "" },
			wantErr: "name cannot be empty",
		},
		{
			name:    "no sections",
			mutate:  func(tm *Template) { tm.Sections = nil },
			wantErr: "at least one section",
		},
		{
			name:    "no company sizes",
			mutate:  func(tm *Template) { tm.CompanySizes = nil },
			wantErr: "company_sizes cannot be empty",
		},
		{
			name: "order gap",
			mutate: func(tm *Template) {
				tm.Sections[1].Order = 3
			},
			wantErr: "consecutive",
		},
		{
			name: "duplicate order",
			mutate: func(tm *Template) {
				tm.Sections[1].Order = 1
			},
			wantErr: "consecutive",
		},
		{
			name: "order below one",
			mutate: func(tm *Template) {
				tm.Sections[0].Order = 0
			},
			wantErr: "order must be >= 1",
		},
		{
			name: "all sections optional",
			mutate: func(tm *Template) {
				tm.Sections[0].Required = false
				tm.Sections[1].Required = false
			},
			wantErr: "at least one required section",
		},
		{
			name: "empty section prompt",
			mutate: func(tm *Template) {
				tm.Sections[0].PromptTemplate = ""
			},
			wantErr: "prompt_template cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := validTemplate()
			tt.mutate(&tmpl)
			_, err := NewTemplate(tmpl)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTemplate_SectionHelpers(t *testing.T) {
	base := validTemplate()
	// Construct with shuffled section order to exercise sorting
	base.Sections = []Section{
		{ID: "scope", Title: "Scope", Required: false, Order: 2, PromptTemplate: "Describe the scope and boundaries of the work."},
		{ID: "summary", Title: "Executive Summary", Required: true, Order: 1, PromptTemplate: "Write an executive summary for the project."},
	}
	tmpl, err := NewTemplate(base)
	require.NoError(t, err)

	ordered := tmpl.SectionsByOrder()
	require.Len(t, ordered, 2)
	assert.Equal(t, "summary", ordered[0].ID)
	assert.Equal(t, "scope", ordered[1].ID)

	required := tmpl.RequiredSections()
	require.Len(t, required, 1)
	assert.Equal(t, "summary", required[0].ID)

	optional := tmpl.OptionalSections()
	require.Len(t, optional, 1)
	assert.Equal(t, "scope", optional[0].ID)

	assert.NotNil(t, tmpl.SectionByID("scope"))
	assert.Nil(t, tmpl.SectionByID("missing"))

	assert.True(t, tmpl.SuitsCompanySize(SizeStartup))
	assert.False(t, tmpl.SuitsCompanySize(SizeEnterprise))
	assert.False(t, tmpl.HasVariants())
}

func TestTemplate_Metadata(t *testing.T) {
	base := validTemplate()
	base.Variants = []string{"tech_project_proposal_lite"}
	base.Prerequisites = []string{"project charter"}
	tmpl, err := NewTemplate(base)
	require.NoError(t, err)

	meta := tmpl.Metadata()
	assert.Equal(t, tmpl.ID, meta.ID)
	assert.Equal(t, 2, meta.SectionCount)
	assert.Equal(t, 1, meta.RequiredSections)
	assert.Equal(t, 1, meta.OptionalSections)
	assert.Equal(t, []string{"startup", "small"}, meta.CompanySizes)
	assert.Equal(t, []string{"tech_project_proposal_lite"}, meta.Variants)
	assert.Equal(t, "medium", meta.Complexity)
}
