package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/propgen/propgen/internal/types"
)

// Statistics aggregates per-dimension template counts.
type Statistics struct {
	TotalTemplates int            `json:"total_templates"`
	ByIndustry     map[string]int `json:"by_industry"`
	ByDocumentType map[string]int `json:"by_document_type"`
	ByComplexity   map[string]int `json:"by_complexity"`
	LoadErrors     int            `json:"load_errors"`
}

// Stats returns aggregate counts over the current snapshot.
func (c *Catalog) Stats() Statistics {
	snap := c.current.Load()
	return Statistics{
		TotalTemplates: len(snap.templates),
		ByIndustry:     cardinalities(snap.industry),
		ByDocumentType: cardinalities(snap.documentType),
		ByComplexity:   cardinalities(snap.complexity),
		LoadErrors:     len(snap.loadErrors),
	}
}

func cardinalities(index map[string][]string) map[string]int {
	out := make(map[string]int, len(index))
	for key, ids := range index {
		out[key] = len(ids)
	}
	return out
}

// HealthReport describes discovery health: files on disk versus templates
// loaded, plus per-index cardinalities.
type HealthReport struct {
	Timestamp          string         `json:"timestamp"`
	TemplatesDirectory string         `json:"templates_directory"`
	DirectoryExists    bool           `json:"directory_exists"`
	TotalTemplateFiles int            `json:"total_template_files"`
	SuccessfullyLoaded int            `json:"successfully_loaded"`
	LoadErrors         int            `json:"load_errors"`
	RelationshipErrors int            `json:"relationship_errors"`
	SuccessRate        float64        `json:"success_rate"`
	IndexesBuilt       map[string]int `json:"indexes_built"`
}

// Health reports on the current state of template discovery. The candidate
// file count is taken from the filesystem at call time; zero files yields a
// defined success rate of 0 rather than a division error.
func (c *Catalog) Health() HealthReport {
	snap := c.current.Load()

	totalFiles := 0
	_, statErr := os.Stat(c.root)
	exists := statErr == nil
	if exists {
		totalFiles = countTemplateFiles(c.root)
	}

	divisor := totalFiles
	if divisor < 1 {
		divisor = 1
	}

	return HealthReport{
		Timestamp:          time.Now().Format(time.RFC3339),
		TemplatesDirectory: c.root,
		DirectoryExists:    exists,
		TotalTemplateFiles: totalFiles,
		SuccessfullyLoaded: len(snap.templates),
		LoadErrors:         len(snap.loadErrors),
		RelationshipErrors: len(snap.relationshipErrors),
		SuccessRate:        float64(len(snap.templates)) / float64(divisor),
		IndexesBuilt: map[string]int{
			"industry":      len(snap.industry),
			"category":      len(snap.category),
			"document_type": len(snap.documentType),
			"tone":          len(snap.tone),
			"complexity":    len(snap.complexity),
			"company_size":  len(snap.companySize),
		},
	}
}

func countTemplateFiles(root string) int {
	count := 0
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(path, TemplateExt) {
			count++
		}
		return nil
	})
	return count
}

// exportDoc is the JSON shape written by Export.
type exportDoc struct {
	GeneratedAt    string           `json:"generated_at"`
	TotalTemplates int              `json:"total_templates"`
	Statistics     Statistics       `json:"statistics"`
	Templates      []types.Metadata `json:"templates"`
}

// Export writes a flattened catalog summary as indented JSON to the given
// path. Reporting only: the catalog itself is not modified.
func (c *Catalog) Export(path string) error {
	snap := c.current.Load()

	records := make([]types.Metadata, 0, len(snap.order))
	for _, id := range snap.order {
		records = append(records, snap.templates[id].Metadata())
	}

	doc := exportDoc{
		GeneratedAt:    time.Now().Format(time.RFC3339),
		TotalTemplates: len(snap.templates),
		Statistics:     c.Stats(),
		Templates:      records,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing catalog export: %w", err)
	}
	return nil
}
