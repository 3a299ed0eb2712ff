package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/pagecap/pagecap"
)

// Compile-time interface verification.
var _ pagecap.CaptureService = (*CaptureService)(nil)

// CaptureService implements pagecap.CaptureService using SQLite.
type CaptureService struct {
	db *DB
}

// NewCaptureService creates a new CaptureService.
func NewCaptureService(db *DB) *CaptureService {
	return &CaptureService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// RecordCapture appends a journal row for a completed capture.
func (s *CaptureService) RecordCapture(ctx context.Context, rec *pagecap.CaptureRecord, content string) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.ContentHash = hashContent(content)
	if rec.CapturedAt.IsZero() {
		rec.CapturedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO captures (id, source_url, title, file_path, content_hash, chars, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SourceURL, rec.Title, rec.FilePath, rec.ContentHash, rec.Chars,
		rec.CapturedAt.Format(time.RFC3339))

	return err
}

// FindCaptureByID retrieves a capture record by ID.
func (s *CaptureService) FindCaptureByID(ctx context.Context, id string) (*pagecap.CaptureRecord, error) {
	var rec pagecap.CaptureRecord
	var capturedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, title, file_path, content_hash, chars, captured_at
		FROM captures
		WHERE id = ?
	`, id).Scan(&rec.ID, &rec.SourceURL, &rec.Title, &rec.FilePath,
		&rec.ContentHash, &rec.Chars, &capturedAt)

	if err == sql.ErrNoRows {
		return nil, pagecap.Errorf(pagecap.ENOTFOUND, "capture not found")
	}
	if err != nil {
		return nil, err
	}

	rec.CapturedAt, err = parseRFC3339(capturedAt, "captured_at")
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// FindCaptures retrieves capture records matching the filter, newest first.
func (s *CaptureService) FindCaptures(ctx context.Context, filter pagecap.CaptureFilter) ([]*pagecap.CaptureRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, title, file_path, content_hash, chars, captured_at FROM captures WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY captured_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*pagecap.CaptureRecord
	for rows.Next() {
		var rec pagecap.CaptureRecord
		var capturedAt string

		if err := rows.Scan(&rec.ID, &rec.SourceURL, &rec.Title, &rec.FilePath,
			&rec.ContentHash, &rec.Chars, &capturedAt); err != nil {
			return nil, err
		}

		rec.CapturedAt, err = parseRFC3339(capturedAt, "captured_at")
		if err != nil {
			return nil, err
		}

		recs = append(recs, &rec)
	}

	return recs, rows.Err()
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses when set.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
