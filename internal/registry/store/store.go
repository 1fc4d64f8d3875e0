// Package store persists the registry collections as one JSON file per
// collection inside a local data directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"parkpass/internal/models"
)

const (
	accountsFile  = "accounts.json"
	salesFile     = "ticket_sales.json"
	discountsFile = "discounts.json"
)

// FileStore reads and writes the three registry collections under Dir.
// The directory is created on first write; a missing file reads as the
// collection's empty default.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// accountsBlob wraps the account list together with the next identifier
// so that identifiers stay strictly increasing across deletions.
type accountsBlob struct {
	NextID   int64             `json:"next_id"`
	Accounts []*models.Account `json:"accounts"`
}

func (s *FileStore) LoadAccounts() ([]*models.Account, int64, error) {
	var blob accountsBlob
	ok, err := s.readJSON(accountsFile, &blob)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 1, nil
	}
	if blob.NextID < 1 {
		blob.NextID = 1
	}
	return blob.Accounts, blob.NextID, nil
}

func (s *FileStore) SaveAccounts(accounts []*models.Account, nextID int64) error {
	return s.writeJSON(accountsFile, accountsBlob{NextID: nextID, Accounts: accounts})
}

func (s *FileStore) LoadSales() (map[string]int, error) {
	sales := make(map[string]int)
	if _, err := s.readJSON(salesFile, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *FileStore) SaveSales(sales map[string]int) error {
	return s.writeJSON(salesFile, sales)
}

func (s *FileStore) LoadDiscounts() (map[string]float64, error) {
	discounts := make(map[string]float64)
	if _, err := s.readJSON(discountsFile, &discounts); err != nil {
		return nil, err
	}
	return discounts, nil
}

func (s *FileStore) SaveDiscounts(discounts map[string]float64) error {
	return s.writeJSON(discountsFile, discounts)
}

// readJSON reports whether the file existed. Absent files are not an
// error: a fresh install starts with every collection empty.
func (s *FileStore) readJSON(name string, v interface{}) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

// writeJSON writes via a temp file and rename so a crash mid-write
// never leaves a truncated collection behind.
func (s *FileStore) writeJSON(name string, v interface{}) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("storage unavailable: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.Dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("storage unavailable: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.Dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
