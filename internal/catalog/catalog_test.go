package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propgen/propgen/internal/logging"
)

// fixture describes one template definition written to the test directory.
type fixture struct {
	ID         string
	Name       string
	Desc       string
	Industry   string
	Category   string
	DocType    string
	Tone       string
	Complexity string
	Sizes      []string
	Minutes    int
	Variants   []string
	UsageCount int
}

func (f fixture) yaml() string {
	var b strings.Builder
	fmt.Fprintf(&b, "template_id: %s\n", f.ID)
	fmt.Fprintf(&b, "name: %s\n", f.Name)
	fmt.Fprintf(&b, "description: %s\n", f.Desc)
	b.WriteString("version: \"1.0\"\n")
	fmt.Fprintf(&b, "industry: %s\n", f.Industry)
	fmt.Fprintf(&b, "category: %s\n", f.Category)
	fmt.Fprintf(&b, "document_type: %s\n", f.DocType)
	b.WriteString("company_sizes:\n")
	for _, s := range f.Sizes {
		fmt.Fprintf(&b, "  - %s\n", s)
	}
	fmt.Fprintf(&b, "tone: %s\n", f.Tone)
	if f.Complexity != "" {
		fmt.Fprintf(&b, "complexity_level: %s\n", f.Complexity)
	}
	if f.Minutes > 0 {
		fmt.Fprintf(&b, "estimated_time_minutes: %d\n", f.Minutes)
	}
	b.WriteString("structure:\n  sections:\n")
	b.WriteString("    - id: summary\n      title: Executive Summary\n      required: true\n      order: 1\n")
	b.WriteString("      prompt_template: Write an executive summary covering goals and outcomes.\n")
	b.WriteString("    - id: details\n      title: Details\n      required: false\n      order: 2\n")
	b.WriteString("      prompt_template: Describe the details and boundaries of the work.\n")
	if len(f.Variants) > 0 {
		b.WriteString("variants:\n")
		for _, v := range f.Variants {
			fmt.Fprintf(&b, "  - %s\n", v)
		}
	}
	if f.UsageCount > 0 {
		b.WriteString("usage_stats:\n")
		b.WriteString("  created_date: \"2026-01-15\"\n")
		b.WriteString("  last_modified: \"2026-03-02\"\n")
		fmt.Fprintf(&b, "  usage_count: %d\n", f.UsageCount)
		b.WriteString("  success_rate: 0.85\n")
	}
	return b.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// testFixtures is the standard four-template corpus used across the catalog
// tests: two technology proposals linked as variants, a manufacturing report
// with a dangling variant reference, and a healthcare policy. A fifth file is
// broken and must surface as a load error.
func testFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, dir, "tech_proposal.yaml", fixture{
		ID:         "tech_proposal",
		Name:       "Software Project Proposal",
		Desc:       "Proposal for custom software development projects",
		Industry:   "technology",
		Category:   "software_development",
		DocType:    "proposal",
		Tone:       "formal_corporate",
		Complexity: "high",
		Sizes:      []string{"startup", "small"},
		Minutes:    45,
		Variants:   []string{"tech_proposal_lite"},
		UsageCount: 12,
	}.yaml())

	writeFile(t, dir, "tech_proposal_lite.yaml", fixture{
		ID:         "tech_proposal_lite",
		Name:       "Lite Software Proposal",
		Desc:       "Shortened proposal for small engagements",
		Industry:   "technology",
		Category:   "software_development",
		DocType:    "proposal",
		Tone:       "startup_agile",
		Complexity: "low",
		Sizes:      []string{"startup"},
		Minutes:    15,
	}.yaml())

	writeFile(t, dir, "mfg_report.yaml", fixture{
		ID:         "mfg_report",
		Name:       "Production Line Report",
		Desc:       "Monthly operations report for production lines",
		Industry:   "manufacturing",
		Category:   "operations",
		DocType:    "report",
		Tone:       "formal_corporate",
		Sizes:      []string{"medium", "large"},
		Variants:   []string{"mfg_report_extended"},
	}.yaml())

	writeFile(t, dir, "health_policy.yaml", fixture{
		ID:         "health_policy",
		Name:       "Clinical Data Policy",
		Desc:       "Policy covering software usage in clinical settings",
		Industry:   "healthcare",
		Category:   "compliance",
		DocType:    "policy",
		Tone:       "government_compliance",
		Complexity: "high",
		Sizes:      []string{"enterprise"},
	}.yaml())

	writeFile(t, dir, "broken.yaml", "template_id: broken\nindustry: fintech\n")

	return dir
}

func loadedCatalog(t *testing.T) (*Catalog, *Summary) {
	t.Helper()
	cat := New(testFixtures(t), logging.NopLogger{})
	summary := cat.Load(context.Background())
	return cat, summary
}

func TestLoad_Summary(t *testing.T) {
	cat, summary := loadedCatalog(t)

	assert.Equal(t, 4, summary.TemplatesLoaded)
	assert.Equal(t, 5, summary.FilesFound)
	assert.Equal(t, 1, summary.LoadErrors)
	assert.Equal(t, 1, summary.RelationshipErrors)
	assert.Equal(t, 3, summary.Industries)
	assert.Equal(t, 3, summary.Categories)
	assert.Equal(t, 3, summary.DocumentTypes)
	assert.Equal(t, 3, summary.Tones)
	assert.Equal(t, 3, summary.ComplexityLevels)
	assert.Equal(t, 5, summary.CompanySizes)

	assert.Equal(t, 4, cat.Len())
	assert.True(t, cat.Contains("tech_proposal"))
	assert.False(t, cat.Contains("broken"))
}

func TestLoad_ErrorMessages(t *testing.T) {
	cat, _ := loadedCatalog(t)

	loadErrors := cat.LoadErrors()
	require.Len(t, loadErrors, 1)
	assert.Contains(t, loadErrors[0], "Error loading ")
	assert.Contains(t, loadErrors[0], "broken.yaml")

	relErrors := cat.RelationshipErrors()
	require.Len(t, relErrors, 1)
	assert.Equal(t, "Template 'mfg_report' references non-existent variant 'mfg_report_extended'", relErrors[0])

	// Dangling variants never unload the referencing template
	assert.True(t, cat.Contains("mfg_report"))
}

func TestLoad_MissingRoot(t *testing.T) {
	cat := New(filepath.Join(t.TempDir(), "nope"), logging.NopLogger{})
	summary := cat.Load(context.Background())

	assert.Equal(t, 0, summary.TemplatesLoaded)
	assert.Equal(t, 0, summary.LoadErrors)
	assert.Empty(t, cat.All())
	assert.Nil(t, cat.Get("anything"))
}

func TestLoad_SkipsFixtureFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "TEMPLATE_SCHEMA.yaml", "not a template")
	writeFile(t, dir, "README.yaml", "not a template")
	writeFile(t, dir, "sample.example.yaml", "not a template")
	writeFile(t, dir, "base.template.yaml", "not a template")
	writeFile(t, dir, "test_one.yaml", "not a template")
	writeFile(t, dir, "one_test.yaml", "not a template")
	writeFile(t, dir, "readme_notes.yaml", "not a template")
	writeFile(t, dir, "real.yaml", fixture{
		ID: "real", Name: "Real", Desc: "A real template definition",
		Industry: "business", Category: "general", DocType: "plan",
		Tone: "consulting_professional", Sizes: []string{"small"},
	}.yaml())

	cat := New(dir, logging.NopLogger{})
	summary := cat.Load(context.Background())

	// Only real.yaml is a candidate; the denylist is case-insensitive
	assert.Equal(t, 1, summary.FilesFound)
	assert.Equal(t, 1, summary.TemplatesLoaded)
	assert.Empty(t, cat.LoadErrors())
}

func TestLoad_DuplicateIDFirstWins(t *testing.T) {
	dir := t.TempDir()
	first := fixture{
		ID: "dup", Name: "First Version", Desc: "The earlier file in walk order",
		Industry: "technology", Category: "general", DocType: "report",
		Tone: "formal_corporate", Sizes: []string{"small"},
	}
	second := first
	second.Name = "Second Version"
	writeFile(t, dir, "a_dup.yaml", first.yaml())
	path := writeFile(t, dir, "b_dup.yaml", second.yaml())

	cat := New(dir, logging.NopLogger{})
	summary := cat.Load(context.Background())

	assert.Equal(t, 1, summary.TemplatesLoaded)
	require.Equal(t, 1, summary.LoadErrors)
	assert.Equal(t, fmt.Sprintf("Duplicate template ID 'dup' in %s", path), cat.LoadErrors()[0])
	assert.Equal(t, "First Version", cat.Get("dup").Name)
}

func TestLoad_NestedDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "technology")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writeFile(t, sub, "nested.yaml", fixture{
		ID: "nested", Name: "Nested", Desc: "Template discovered in a subdirectory",
		Industry: "technology", Category: "general", DocType: "plan",
		Tone: "startup_agile", Sizes: []string{"startup"},
	}.yaml())

	cat := New(dir, logging.NopLogger{})
	summary := cat.Load(context.Background())

	assert.Equal(t, 1, summary.TemplatesLoaded)
	assert.True(t, cat.Contains("nested"))
}

func TestReload_Idempotent(t *testing.T) {
	cat, first := loadedCatalog(t)
	before := cat.All()

	second := cat.Reload(context.Background())

	assert.Equal(t, first, second)
	after := cat.All()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		// Snapshots never alias templates across loads
		assert.NotSame(t, before[i], after[i])
	}
}

func TestReload_PicksUpNewFiles(t *testing.T) {
	dir := testFixtures(t)
	cat := New(dir, logging.NopLogger{})
	cat.Load(context.Background())
	require.Equal(t, 4, cat.Len())

	writeFile(t, dir, "new_spec.yaml", fixture{
		ID: "new_spec", Name: "API Specification", Desc: "Interface specification for service teams",
		Industry: "technology", Category: "architecture", DocType: "specification",
		Tone: "formal_corporate", Sizes: []string{"medium"},
	}.yaml())

	cat.Reload(context.Background())
	assert.Equal(t, 5, cat.Len())
	assert.True(t, cat.Contains("new_spec"))
}

func TestCheckForChanges(t *testing.T) {
	dir := testFixtures(t)
	cat := New(dir, logging.NopLogger{})
	cat.Load(context.Background())

	assert.Empty(t, cat.CheckForChanges(), "freshly loaded catalog reports no changes")

	future := time.Now().Add(2 * time.Second)

	// Rewrite one template cleanly, corrupt another, delete a third
	techPath := filepath.Join(dir, "tech_proposal.yaml")
	updated := fixture{
		ID: "tech_proposal", Name: "Software Project Proposal v2",
		Desc: "Proposal for custom software development projects",
		Industry: "technology", Category: "software_development", DocType: "proposal",
		Tone: "formal_corporate", Sizes: []string{"startup", "small"},
	}.yaml()
	require.NoError(t, os.WriteFile(techPath, []byte(updated), 0644))
	require.NoError(t, os.Chtimes(techPath, future, future))

	litePath := filepath.Join(dir, "tech_proposal_lite.yaml")
	require.NoError(t, os.WriteFile(litePath, []byte("industry: [broken"), 0644))
	require.NoError(t, os.Chtimes(litePath, future, future))

	require.NoError(t, os.Remove(filepath.Join(dir, "health_policy.yaml")))

	changes := cat.CheckForChanges()
	assert.Contains(t, changes, "tech_proposal")
	assert.Contains(t, changes, "MODIFIED: tech_proposal_lite.yaml")
	assert.Contains(t, changes, "DELETED: health_policy.yaml")
	assert.NotContains(t, changes, "mfg_report")

	// Detection is read-only; the catalog still serves the old state
	assert.Equal(t, "Software Project Proposal", cat.Get("tech_proposal").Name)
	assert.True(t, cat.Contains("health_policy"))
}
