package sentlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/hr-outreach/internal/types"
)

// legacyLayouts accepts timestamps written without a zone offset.
var legacyLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// fileRecord is the on-disk shape of one entry.
type fileRecord struct {
	Timestamp string `json:"timestamp"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	HRName    string `json:"hr_name"`
	Subject   string `json:"subject"`
	RunID     string `json:"run_id,omitempty"`
}

// FileStore keeps the log as a JSON array. Every append rewrites the whole
// file through a temp file and rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Entries reads the full log. A missing or empty file is an empty log.
func (s *FileStore) Entries(_ context.Context) ([]types.SentEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) read() ([]types.SentEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sent log %s: %w", s.path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}

	var records []fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse sent log %s: %w", s.path, err)
	}

	out := make([]types.SentEntry, 0, len(records))
	for i, r := range records {
		ts, err := parseTimestamp(r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("sent log %s entry %d: %w", s.path, i+1, err)
		}
		out = append(out, types.SentEntry{
			Timestamp: ts,
			Email:     r.Email,
			Company:   r.Company,
			HRName:    r.HRName,
			Subject:   r.Subject,
			RunID:     r.RunID,
		})
	}
	return out, nil
}

// Append adds one entry and persists the log before returning.
func (s *FileStore) Append(_ context.Context, e types.SentEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}
	entries = append(entries, e)

	records := make([]fileRecord, 0, len(entries))
	for _, en := range entries {
		records = append(records, fileRecord{
			Timestamp: en.Timestamp.Format(time.RFC3339Nano),
			Email:     en.Email,
			Company:   en.Company,
			HRName:    en.HRName,
			Subject:   en.Subject,
			RunID:     en.RunID,
		})
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sent log: %w", err)
	}
	return writeAtomic(s.path, data)
}

// Close is a no-op; the file is not held open.
func (s *FileStore) Close() error {
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write sent log: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync sent log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close sent log: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace sent log: %w", err)
	}
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
