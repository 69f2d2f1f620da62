package storage

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	MetadataFileName = "record_meta.json" // reliable creation timestamp
)

// Record is one simulation run's persisted history plus its metadata.
type Record struct {
	Name         string    `json:"name"`
	Hash         string    `json:"hash"`
	LastModified time.Time `json:"lastModified"`
	CreationTime time.Time `json:"creationTime"`
	Path         string
	History      *Storage
}

type Metadata struct {
	CreationTime time.Time `json:"creationTime"`
	NumJoints    int       `json:"numJoints"`
}

// NewRecord opens the history storage for a run directory.
func NewRecord(baseDir, hash string, numJoints int) (*Record, error) {
	dir := filepath.Join(baseDir, hash)
	historyStore, err := NewStorage(dir, HistoryHeaders(numJoints))
	if err != nil {
		return nil, err
	}

	return &Record{
		Hash:         hash,
		Name:         hash,
		LastModified: time.Now(),
		History:      historyStore,
	}, nil
}

// Close closes the record's storage.
func (r *Record) Close() error {
	if r.History == nil {
		return nil
	}
	return r.History.Close()
}

// RecordManager manages simulation records under a base directory.
type RecordManager struct {
	baseDir string
	mu      sync.RWMutex
}

// NewRecordManager returns a RecordManager rooted at baseDir, creating it if
// needed. A relative baseDir is resolved under the user's home directory.
func NewRecordManager(baseDir string) (*RecordManager, error) {
	if !filepath.IsAbs(baseDir) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		baseDir = filepath.Join(homeDir, baseDir)
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &RecordManager{baseDir: baseDir}, nil
}

// CreateRecord creates a new record, sized for a model with numJoints
// joints, keyed by a freshly generated hash.
func (rm *RecordManager) CreateRecord(numJoints int) (*Record, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	hash := fmt.Sprintf("%x", sha256.Sum256([]byte(time.Now().String())))

	record, err := NewRecord(rm.baseDir, hash, numJoints)
	if err != nil {
		return nil, err
	}

	if err := record.History.Init(); err != nil {
		record.Close()
		return nil, err
	}

	meta := Metadata{CreationTime: time.Now(), NumJoints: numJoints}
	metaFilePath := filepath.Join(rm.baseDir, hash, MetadataFileName)
	metaFile, err := os.Create(metaFilePath)
	if err != nil {
		_ = os.RemoveAll(filepath.Join(rm.baseDir, hash))
		return nil, fmt.Errorf("failed to create metadata file %s: %w", metaFilePath, err)
	}
	defer metaFile.Close()

	if err := json.NewEncoder(metaFile).Encode(meta); err != nil {
		_ = os.RemoveAll(filepath.Join(rm.baseDir, hash))
		return nil, fmt.Errorf("failed to encode metadata to %s: %w", metaFilePath, err)
	}

	return rm.loadRecord(hash)
}

// GetStorageDir returns the base directory records are stored under.
func (rm *RecordManager) GetStorageDir() string { return rm.baseDir }

// loadRecord loads record details from disk. Assumes the caller holds the
// appropriate lock.
func (rm *RecordManager) loadRecord(hash string) (*Record, error) {
	recordPath := filepath.Join(rm.baseDir, hash)
	info, err := os.Stat(recordPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("record %s not found", hash)
		}
		return nil, fmt.Errorf("failed to stat record directory %s: %w", recordPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path %s is not a directory", recordPath)
	}

	creationTime := info.ModTime()
	numJoints := 0
	metaFilePath := filepath.Join(recordPath, MetadataFileName)
	if metaFile, err := os.Open(metaFilePath); err == nil {
		var meta Metadata
		if json.NewDecoder(metaFile).Decode(&meta) == nil {
			creationTime = meta.CreationTime
			numJoints = meta.NumJoints
		}
		metaFile.Close()
	}

	historyStore, err := NewStorage(recordPath, HistoryHeaders(numJoints))
	if err != nil {
		return nil, fmt.Errorf("failed to init history storage for %s: %w", hash, err)
	}

	return &Record{
		Hash:         hash,
		Name:         hash,
		LastModified: info.ModTime(),
		CreationTime: creationTime,
		Path:         recordPath,
		History:      historyStore,
	}, nil
}

// DeleteRecord deletes a record by hash.
func (rm *RecordManager) DeleteRecord(hash string) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	recordPath := filepath.Join(rm.baseDir, hash)
	if err := os.RemoveAll(recordPath); err != nil {
		return fmt.Errorf("failed to delete record: %v", err)
	}

	return nil
}

// ListRecords lists all existing valid records in the base directory.
func (rm *RecordManager) ListRecords() ([]*Record, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	entries, err := os.ReadDir(rm.baseDir)
	if err != nil {
		return nil, err
	}

	var records []*Record
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		recordPath := filepath.Join(rm.baseDir, entry.Name())
		info, err := os.Stat(recordPath)
		if err != nil {
			continue
		}

		creationTime := info.ModTime()
		metaFilePath := filepath.Join(recordPath, MetadataFileName)
		if metaFile, err := os.Open(metaFilePath); err == nil {
			var meta Metadata
			if json.NewDecoder(metaFile).Decode(&meta) == nil {
				creationTime = meta.CreationTime
			}
			metaFile.Close()
		}

		records = append(records, &Record{
			Hash:         entry.Name(),
			Name:         entry.Name(),
			LastModified: info.ModTime(),
			CreationTime: creationTime,
			Path:         recordPath,
		})
	}

	return records, nil
}

// GetRecord retrieves an existing record by hash without creating a new one.
func (rm *RecordManager) GetRecord(hash string) (*Record, error) {
	if strings.Contains(hash, "/") || strings.Contains(hash, "\\") || strings.Contains(hash, "..") {
		return nil, fmt.Errorf("invalid hash value")
	}

	rm.mu.RLock()
	defer rm.mu.RUnlock()

	recordPath := filepath.Join(rm.baseDir, hash)
	if _, err := os.Stat(recordPath); os.IsNotExist(err) {
		return nil, ErrRecordNotFound
	}

	return rm.loadRecord(hash)
}
