package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Metadata describes an ingested document and, once rendered, its layout
type Metadata struct {
	Source    string   `json:"source,omitempty"`
	Kind      string   `json:"kind,omitempty"`
	Timestamp string   `json:"timestamp"` // RFC3339 format
	Hash      string   `json:"hash"`      // SHA256 hex digest of the cleaned text
	Name      string   `json:"name,omitempty"`
	Pages     int      `json:"pages,omitempty"`
	Headings  []string `json:"headings,omitempty"`
	Output    string   `json:"output,omitempty"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}

// WriteMetadata writes m as JSON to path, creating parent directories
func WriteMetadata(path string, m *Metadata) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	metaJSON, err := m.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}
