// Package catalog owns the template collection: it discovers definition
// files under a root directory, loads and validates each one, maintains the
// derived indexes, tracks per-file fingerprints for change detection, and
// answers every query the hosting application issues.
//
// Concurrency follows a snapshot-swap design: Load builds a complete new
// state off to the side and publishes it with a single atomic pointer store.
// Readers dereference the current snapshot and never observe a half-built
// index. Load and Reload are serialized behind a writer mutex.
package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/propgen/propgen/internal/loader"
	"github.com/propgen/propgen/internal/logging"
	"github.com/propgen/propgen/internal/types"
)

// TemplateExt is the file extension of template definition files.
const TemplateExt = ".yaml"

// skipPatterns excludes schema docs, readmes, examples, and test fixtures
// from discovery. Matching is case-insensitive on the file name.
var skipPatterns = []string{
	"TEMPLATE_SCHEMA", "README", ".example", ".template", "test_", "_test",
}

// snapshot is one immutable, fully-built catalog state. Indexes hold
// template IDs resolved through the templates map on read, so a snapshot
// never aliases templates from a previous load.
type snapshot struct {
	templates map[string]*types.Template
	// order preserves discovery order for deterministic iteration
	order []string

	industry     map[string][]string
	category     map[string][]string // keyed "industry:category"
	documentType map[string][]string
	tone         map[string][]string
	complexity   map[string][]string
	companySize  map[string][]string // one entry per supported size

	loadErrors         []string
	relationshipErrors []string

	fileMTimes map[string]time.Time
	fileHashes map[string]string

	// totalFiles counts discovered candidate files, including ones that
	// failed to load
	totalFiles int
}

func newSnapshot() *snapshot {
	return &snapshot{
		templates:    make(map[string]*types.Template),
		industry:     make(map[string][]string),
		category:     make(map[string][]string),
		documentType: make(map[string][]string),
		tone:         make(map[string][]string),
		complexity:   make(map[string][]string),
		companySize:  make(map[string][]string),
		fileMTimes:   make(map[string]time.Time),
		fileHashes:   make(map[string]string),
	}
}

// Catalog is the process-scoped template aggregate. Construct with New and
// call Load before serving queries; every query is safe to call concurrently
// with Load/Reload.
type Catalog struct {
	root   string
	logger logging.Logger

	// mu serializes Load/Reload; readers never take it
	mu      sync.Mutex
	current atomic.Pointer[snapshot]
}

// New creates a catalog rooted at dir. The logger is held for the catalog's
// lifetime; pass logging.NopLogger{} to discard diagnostics.
func New(dir string, logger logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	c := &Catalog{
		root:   dir,
		logger: logger.WithComponent("catalog"),
	}
	c.current.Store(newSnapshot())
	return c
}

// Root returns the templates directory the catalog scans.
func (c *Catalog) Root() string { return c.root }

// Summary reports the outcome of a Load for the caller's diagnostics.
type Summary struct {
	TemplatesLoaded    int
	FilesFound         int
	LoadErrors         int
	RelationshipErrors int
	Industries         int
	Categories         int
	DocumentTypes      int
	Tones              int
	ComplexityLevels   int
	CompanySizes       int
}

// Load performs a full, destructive rescan of the root directory and
// atomically publishes the result. Per-file problems are recorded in the
// load error list and never abort the scan; a missing or unreadable root
// degrades to an empty catalog. Load never fails.
func (c *Catalog) Load(ctx context.Context) *Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := newSnapshot()

	if _, err := os.Stat(c.root); err != nil {
		c.logger.Warn(ctx, err, "templates directory does not exist", "dir", c.root)
		c.current.Store(snap)
		return c.summarize(snap)
	}

	files, walkErr := discoverTemplateFiles(c.root)
	if walkErr != nil {
		// Catastrophic enumeration failure degrades to an empty catalog
		// with one recorded error so the host stays usable.
		snap.loadErrors = append(snap.loadErrors,
			fmt.Sprintf("Error scanning templates directory %s: %v", c.root, walkErr))
		c.logger.Error(ctx, walkErr, "template directory scan failed", "dir", c.root)
		c.current.Store(snap)
		return c.summarize(snap)
	}

	c.logger.Info(ctx, "loading templates", "dir", c.root, "files", len(files))
	snap.totalFiles = len(files)

	for _, file := range files {
		c.loadFile(ctx, snap, file)
	}

	validateRelationships(snap)
	c.current.Store(snap)

	summary := c.summarize(snap)
	c.logger.Info(ctx, "template loading completed",
		"loaded", summary.TemplatesLoaded,
		"industries", summary.Industries,
		"document_types", summary.DocumentTypes)
	if summary.LoadErrors > 0 {
		c.logger.Warn(ctx, nil, "templates failed to load", "load_errors", summary.LoadErrors)
	}
	if summary.RelationshipErrors > 0 {
		c.logger.Warn(ctx, nil, "dangling variant references", "relationship_errors", summary.RelationshipErrors)
	}
	return summary
}

// Reload is a full Load rerun. Incremental patching is deliberately avoided:
// catalogs are small and a rebuild is always consistent.
func (c *Catalog) Reload(ctx context.Context) *Summary {
	c.logger.Info(ctx, "reloading templates from disk")
	return c.Load(ctx)
}

// discoverTemplateFiles enumerates candidate files in deterministic
// (lexical walk) order, applying the skip denylist.
func discoverTemplateFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, TemplateExt) {
			return nil
		}
		if shouldSkipFile(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func shouldSkipFile(path string) bool {
	name := strings.ToUpper(filepath.Base(path))
	for _, pattern := range skipPatterns {
		if strings.Contains(name, strings.ToUpper(pattern)) {
			return true
		}
	}
	return false
}

func (c *Catalog) loadFile(ctx context.Context, snap *snapshot, path string) {
	c.trackFile(snap, path)

	tmpl, err := loader.LoadValidated(path)
	if err != nil {
		msg := fmt.Sprintf("Error loading %s: %v", path, err)
		snap.loadErrors = append(snap.loadErrors, msg)
		c.logger.Error(ctx, err, "template load failed", "file", path)
		return
	}

	if _, exists := snap.templates[tmpl.ID]; exists {
		snap.loadErrors = append(snap.loadErrors,
			fmt.Sprintf("Duplicate template ID '%s' in %s", tmpl.ID, path))
		return
	}

	snap.templates[tmpl.ID] = tmpl
	snap.order = append(snap.order, tmpl.ID)
	indexTemplate(snap, tmpl)
	c.logger.Debug(ctx, "loaded template", "id", tmpl.ID, "file", path)
}

// trackFile records the mtime and content fingerprint used by
// CheckForChanges. Stat or read failures fall through to the loader, which
// reports them as load errors.
func (c *Catalog) trackFile(snap *snapshot, path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	snap.fileMTimes[path] = info.ModTime()

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	sum := sha256.Sum256(data)
	snap.fileHashes[path] = hex.EncodeToString(sum[:])
}

func indexTemplate(snap *snapshot, t *types.Template) {
	snap.industry[string(t.Industry)] = append(snap.industry[string(t.Industry)], t.ID)

	categoryKey := string(t.Industry) + ":" + t.Category
	snap.category[categoryKey] = append(snap.category[categoryKey], t.ID)

	snap.documentType[string(t.DocumentType)] = append(snap.documentType[string(t.DocumentType)], t.ID)
	snap.tone[string(t.Tone)] = append(snap.tone[string(t.Tone)], t.ID)
	snap.complexity[string(t.Complexity)] = append(snap.complexity[string(t.Complexity)], t.ID)

	for _, size := range t.CompanySizes {
		snap.companySize[string(size)] = append(snap.companySize[string(size)], t.ID)
	}
}

// validateRelationships flags variant references that resolve to no loaded
// template. Advisory only: the referencing template stays loaded.
func validateRelationships(snap *snapshot) {
	for _, id := range snap.order {
		t := snap.templates[id]
		for _, variantID := range t.Variants {
			if _, ok := snap.templates[variantID]; !ok {
				snap.relationshipErrors = append(snap.relationshipErrors,
					fmt.Sprintf("Template '%s' references non-existent variant '%s'", id, variantID))
			}
		}
	}
}

func (c *Catalog) summarize(snap *snapshot) *Summary {
	return &Summary{
		TemplatesLoaded:    len(snap.templates),
		FilesFound:         snap.totalFiles,
		LoadErrors:         len(snap.loadErrors),
		RelationshipErrors: len(snap.relationshipErrors),
		Industries:         len(snap.industry),
		Categories:         len(snap.category),
		DocumentTypes:      len(snap.documentType),
		Tones:              len(snap.tone),
		ComplexityLevels:   len(snap.complexity),
		CompanySizes:       len(snap.companySize),
	}
}

// CheckForChanges compares tracked files against the filesystem without
// mutating catalog state. For each tracked file it reports
// "DELETED: <name>" when the file is gone, the template ID when the file
// re-parses cleanly after a newer mtime, or "MODIFIED: <name>" when the
// newer file no longer parses. Reload is the only way to apply changes.
func (c *Catalog) CheckForChanges() []string {
	snap := c.current.Load()

	paths := make([]string, 0, len(snap.fileMTimes))
	for path := range snap.fileMTimes {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var changed []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			changed = append(changed, "DELETED: "+filepath.Base(path))
			continue
		}
		if !info.ModTime().After(snap.fileMTimes[path]) {
			continue
		}
		tmpl, err := loader.LoadValidated(path)
		if err != nil {
			changed = append(changed, "MODIFIED: "+filepath.Base(path))
			continue
		}
		changed = append(changed, tmpl.ID)
	}
	return changed
}

// LoadErrors returns a copy of the per-file load error list in discovery
// order.
func (c *Catalog) LoadErrors() []string {
	snap := c.current.Load()
	out := make([]string, len(snap.loadErrors))
	copy(out, snap.loadErrors)
	return out
}

// RelationshipErrors returns a copy of the dangling-variant warnings.
func (c *Catalog) RelationshipErrors() []string {
	snap := c.current.Load()
	out := make([]string, len(snap.relationshipErrors))
	copy(out, snap.relationshipErrors)
	return out
}

// Len returns the number of loaded templates.
func (c *Catalog) Len() int {
	return len(c.current.Load().templates)
}

// Contains reports whether a template with the given ID is loaded.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.current.Load().templates[id]
	return ok
}
