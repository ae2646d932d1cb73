package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/readweb"
	"github.com/gobwas/glob"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ readweb.PresetService = (*PresetService)(nil)

const presetColumns = "id, site_pattern, preset, content_hash, created_at"

// PresetService implements readweb.PresetService using SQLite.
type PresetService struct {
	db  *DB
	now func() time.Time
}

// NewPresetService creates a new PresetService.
func NewPresetService(db *DB) *PresetService {
	return &PresetService{db: db, now: time.Now}
}

// hashPreset computes the xxHash of the preset's canonical JSON form.
func hashPreset(p readweb.Preset) (string, []byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), data, nil
}

// compilePattern compiles a site pattern with '/' as the path separator.
func compilePattern(pattern string) (glob.Glob, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, readweb.Errorf(readweb.EINVALID, "invalid site pattern %q: %v", pattern, err)
	}
	return g, nil
}

// CreatePreset stores a new preset, assigning its ID, hash and timestamp.
func (s *PresetService) CreatePreset(ctx context.Context, preset *readweb.StoredPreset) error {
	if err := preset.Validate(); err != nil {
		return err
	}
	if _, err := compilePattern(preset.SitePattern); err != nil {
		return err
	}

	hash, data, err := hashPreset(preset.Preset)
	if err != nil {
		return err
	}

	var existing string
	err = s.db.QueryRowContext(ctx,
		"SELECT id FROM presets WHERE site_pattern = ? AND content_hash = ?",
		preset.SitePattern, hash,
	).Scan(&existing)
	if err == nil {
		return readweb.Errorf(readweb.ECONFLICT, "preset already stored for %q as %s", preset.SitePattern, existing)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	preset.ID = uuid.New().String()
	preset.ContentHash = hash
	preset.CreatedAt = s.now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO presets (id, site_pattern, preset, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, preset.ID, preset.SitePattern, string(data), preset.ContentHash, preset.CreatedAt.Format(time.RFC3339))
	return err
}

// FindPresetByID retrieves a preset by ID.
func (s *PresetService) FindPresetByID(ctx context.Context, id string) (*readweb.StoredPreset, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+presetColumns+" FROM presets WHERE id = ?", id)
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, readweb.Errorf(readweb.ENOTFOUND, "preset not found")
	}
	return p, err
}

// FindPresets retrieves presets matching the filter, most recent first.
func (s *PresetService) FindPresets(ctx context.Context, filter readweb.PresetFilter) ([]*readweb.StoredPreset, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + presetColumns + " FROM presets WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SitePattern != nil {
		query.WriteString(" AND site_pattern = ?")
		args = append(args, *filter.SitePattern)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	// SQLite accepts OFFSET only after LIMIT; -1 means no limit.
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, limit, max(filter.Offset, 0))
	}

	return s.query(ctx, query.String(), args...)
}

// FindPresetsForURL retrieves presets whose site pattern matches the URL's
// host and path, most recent first.
func (s *PresetService) FindPresetsForURL(ctx context.Context, rawURL string) ([]*readweb.StoredPreset, error) {
	key, err := matchKey(rawURL)
	if err != nil {
		return nil, err
	}

	all, err := s.query(ctx, "SELECT "+presetColumns+" FROM presets ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, err
	}

	var matched []*readweb.StoredPreset
	for _, p := range all {
		g, err := compilePattern(p.SitePattern)
		if err != nil {
			continue
		}
		if g.Match(key) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// DeletePreset permanently removes a preset.
func (s *PresetService) DeletePreset(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM presets WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return readweb.Errorf(readweb.ENOTFOUND, "preset not found")
	}
	return nil
}

func (s *PresetService) query(ctx context.Context, query string, args ...any) ([]*readweb.StoredPreset, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []*readweb.StoredPreset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (*readweb.StoredPreset, error) {
	var p readweb.StoredPreset
	var data, createdAt string

	if err := row.Scan(&p.ID, &p.SitePattern, &data, &p.ContentHash, &createdAt); err != nil {
		return nil, err
	}

	preset, err := readweb.ParsePresetBytes([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode preset %s: %w", p.ID, err)
	}
	p.Preset = *preset

	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at of preset %s: %w", p.ID, err)
	}
	return &p, nil
}

// matchKey returns the host and path a site pattern is matched against,
// e.g. "docs.example.com/guide/intro".
func matchKey(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", readweb.Errorf(readweb.EINVALID, "invalid URL %q", rawURL)
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return strings.ToLower(u.Host) + path, nil
}
