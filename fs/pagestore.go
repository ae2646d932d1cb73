package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/readweb"
)

// Ensure FileStore implements readweb.PageStore at compile time.
var _ readweb.PageStore = (*FileStore)(nil)

// FileStore implements readweb.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
	now     func() time.Time
}

// NewFileStore creates a new FileStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		now:     time.Now,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the page as markdown with frontmatter under the temp directory.
func (s *FileStore) Save(ctx context.Context, page *readweb.Page) error {
	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatPage(page, s.now())), 0o644)
}

// FormatPage formats a page with YAML frontmatter.
func FormatPage(page *readweb.Page, crawled time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: " + page.URL + "\n")
	b.WriteString("title: " + page.Title + "\n")
	if page.Method != "" {
		b.WriteString("method: " + string(page.Method) + "\n")
	}
	if page.PresetID != "" {
		b.WriteString("preset: " + page.PresetID + "\n")
	}
	b.WriteString("crawled: " + crawled.Format("2006-01-02") + "\n")
	b.WriteString("---\n\n")
	b.WriteString(page.Content)
	return b.String()
}

// Commit replaces the output directory with the saved pages.
func (s *FileStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved pages.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
