package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/glucotrack/backend/internal/service"
	"github.com/pageza/glucotrack/backend/internal/testhelpers"
)

// fakeBackup records what would be uploaded to S3.
type fakeBackup struct {
	key         string
	body        []byte
	contentType string
	putErr      error
}

func (f *fakeBackup) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	f.key = key
	f.body = body
	f.contentType = contentType
	return f.putErr
}

func (f *fakeBackup) GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return "https://backups.example.com/" + key, nil
}

func TestExportHistoryCSV(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	testhelpers.CreateTestUser(t, db, "alice", "password123")

	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	testhelpers.CreateTestEntry(t, db, "alice", 110.5, "toast", "walk", base)
	testhelpers.CreateTestEntry(t, db, "alice", 150, "pasta, with \"sauce\"", "", base.Add(24*time.Hour))

	svc := service.NewExportService(service.NewEntryService(db), nil)

	data, err := svc.ExportHistoryCSV(context.Background(), "alice")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two rows")

	assert.Equal(t, []string{"entry_id", "username", "blood_sugar_mg_dl", "meal", "exercise", "date", "created_at"}, records[0])
	assert.Equal(t, "150", records[1][2], "newest first")
	assert.Equal(t, `pasta, with "sauce"`, records[1][3], "quoting survives the round trip")
	assert.Equal(t, "110.5", records[2][2])
	assert.Equal(t, "2025-03-10T08:00:00Z", records[2][5])
}

func TestExportHistoryCSVEmptyHistory(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewExportService(service.NewEntryService(db), nil)

	data, err := svc.ExportHistoryCSV(context.Background(), "nobody")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1, "header only")
}

func TestBackupToS3Disabled(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewExportService(service.NewEntryService(db), nil)

	url, err := svc.BackupToS3(context.Background(), "alice", []byte("csv"))
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestBackupToS3Uploads(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	backup := &fakeBackup{}
	svc := service.NewExportService(service.NewEntryService(db), backup)

	url, err := svc.BackupToS3(context.Background(), "alice", []byte("csv-data"))
	require.NoError(t, err)

	assert.Contains(t, backup.key, "exports/alice/")
	assert.Equal(t, "text/csv", backup.contentType)
	assert.Equal(t, []byte("csv-data"), backup.body)
	assert.Contains(t, url, backup.key)
}

func TestBackupToS3UploadFailure(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	backup := &fakeBackup{putErr: errors.New("access denied")}
	svc := service.NewExportService(service.NewEntryService(db), backup)

	_, err := svc.BackupToS3(context.Background(), "alice", []byte("csv"))
	assert.Error(t, err)
}
