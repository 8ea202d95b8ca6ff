package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/pageza/glucotrack/backend/internal/models"
)

// HistoryProvider is the slice of the entry store the exporter needs.
type HistoryProvider interface {
	GetHistory(ctx context.Context, username string) []models.GlucoseEntry
}

// BackupStore uploads blobs and hands back time-limited download links.
// config.S3Config satisfies it.
type BackupStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// ExportService renders a user's history as CSV and optionally mirrors the
// file to a backup bucket.
type ExportService struct {
	entries HistoryProvider
	backup  BackupStore
}

var _ IExportService = (*ExportService)(nil)

// NewExportService creates a new ExportService instance. backup may be nil,
// which disables S3 mirroring.
func NewExportService(entries HistoryProvider, backup BackupStore) *ExportService {
	return &ExportService{
		entries: entries,
		backup:  backup,
	}
}

// ExportHistoryCSV renders the user's entries as CSV, newest first, glucose
// values in canonical mg/dL. An empty history yields just the header row.
func (s *ExportService) ExportHistoryCSV(ctx context.Context, username string) ([]byte, error) {
	entries := s.entries.GetHistory(ctx, username)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"entry_id", "username", "blood_sugar_mg_dl", "meal", "exercise", "date", "created_at"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.EntryID.String(),
			e.Username,
			strconv.FormatFloat(e.BloodSugar, 'f', -1, 64),
			e.Meal,
			e.Exercise,
			e.Date.UTC().Format(time.RFC3339),
			e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// BackupToS3 uploads the rendered CSV under a per-user timestamped key and
// returns a presigned download URL. Returns an empty URL without error when
// no backup store is configured.
func (s *ExportService) BackupToS3(ctx context.Context, username string, data []byte) (string, error) {
	if s.backup == nil {
		return "", nil
	}

	key := fmt.Sprintf("exports/%s/%s.csv", username, time.Now().UTC().Format("20060102T150405Z"))
	if err := s.backup.PutObject(ctx, key, data, "text/csv"); err != nil {
		return "", fmt.Errorf("failed to upload export backup: %w", err)
	}

	url, err := s.backup.GeneratePresignedURL(ctx, key, 24*time.Hour)
	if err != nil {
		return "", fmt.Errorf("failed to presign export backup: %w", err)
	}
	return url, nil
}
