package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// historyFileName is the on-disk name of a run's recorded trajectory.
const historyFileName = "HISTORY.csv"

// HistoryHeaders builds the CSV header row for a model with n joints:
// time, then q_0..q_{n-1}, then qdot_0..qdot_{n-1}. Column count is fixed
// once a Storage is opened for a given model; it is never inferred from
// the file itself.
func HistoryHeaders(n int) []string {
	headers := make([]string, 0, 1+2*n)
	headers = append(headers, "time")
	for i := 0; i < n; i++ {
		headers = append(headers, fmt.Sprintf("q_%d", i))
	}
	for i := 0; i < n; i++ {
		headers = append(headers, fmt.Sprintf("qdot_%d", i))
	}
	return headers
}

// Storage is a service that writes one run's history to a CSV file on disk.
type Storage struct {
	recordDir string
	headers   []string
	mu        sync.RWMutex
	filePath  string
	writer    *csv.Writer
	file      *os.File
}

// NewStorage creates a storage service rooted at recordDir, writing rows
// with the given header columns.
func NewStorage(recordDir string, headers []string) (*Storage, error) {
	absRecordDir, err := filepath.Abs(recordDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for record directory %s: %w", recordDir, err)
	}

	if err := os.MkdirAll(absRecordDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create record directory %s: %w", absRecordDir, err)
	}

	filePath := filepath.Join(absRecordDir, historyFileName)

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create/open file %s: %w", filePath, err)
	}

	return &Storage{
		recordDir: absRecordDir,
		headers:   headers,
		filePath:  filePath,
		file:      file,
		writer:    csv.NewWriter(file),
	}, nil
}

// Init ensures the header row is written, truncating any prior content.
func (s *Storage) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.file.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate file: %v", err)
	}
	if _, err := s.file.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to seek to beginning: %v", err)
	}

	if err := s.writer.Write(s.headers); err != nil {
		return fmt.Errorf("failed to write headers: %v", err)
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return fmt.Errorf("failed to flush headers: %v", err)
	}

	return nil
}

// Write appends a record to the storage service.
func (s *Storage) Write(data []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(data) != len(s.headers) {
		return fmt.Errorf("data length (%d) does not match headers length (%d)", len(data), len(s.headers))
	}

	if err := s.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %v", err)
	}
	if err := s.writer.Error(); err != nil {
		return fmt.Errorf("failed to flush data: %v", err)
	}
	s.writer.Flush()

	return nil
}

// Close flushes and closes the underlying file.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writer != nil {
		s.writer.Flush()
		if err := s.writer.Error(); err != nil {
			return fmt.Errorf("failed to flush on close: %v", err)
		}
	}

	if s.file != nil {
		if err := s.file.Sync(); err != nil {
			return fmt.Errorf("failed to sync file: %v", err)
		}
		return s.file.Close()
	}
	return nil
}

// GetFilePath returns the file path of the storage service.
func (s *Storage) GetFilePath() string {
	return s.filePath
}

// ReadAll reads all rows from the storage file, including the header row.
func (s *Storage) ReadAll() ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("failed to seek to beginning: %v", err)
	}

	reader := csv.NewReader(s.file)
	allData, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %v", err)
	}

	if len(allData) == 0 {
		return nil, fmt.Errorf("no data found in storage")
	}

	return allData, nil
}

// ReadHeadersAndData reads the header row and data rows separately.
func (s *Storage) ReadHeadersAndData() ([]string, [][]string, error) {
	allData, err := s.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	headers := allData[0]
	data := allData[1:]

	return headers, data, nil
}

// StorageInterface is satisfied by Storage; it lets callers depend on an
// interface for mocking in tests.
type StorageInterface interface {
	Init() error
	Write([]string) error
	Close() error
}
