// Package auth establishes access to the remote focus service and keeps the
// resulting credentials on disk.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/focuslog/internal/domain"
	"gopkg.in/yaml.v3"
)

const credentialsFile = "credentials.yaml"

// ErrNoCredentials is returned when nobody has logged in yet.
var ErrNoCredentials = errors.New("not logged in")

// Credentials is the structure of ~/.focuslog/credentials.yaml.
type Credentials struct {
	Mode     domain.SourceMode `yaml:"mode"`
	APIURL   string            `yaml:"api_url,omitempty"`
	Username string            `yaml:"username,omitempty"`
	Token    string            `yaml:"token,omitempty"`
	IssuedAt time.Time         `yaml:"issued_at"`
}

// Store reads and writes credentials in a directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, credentialsFile)
}

// Load reads the stored credentials. A missing file yields ErrNoCredentials.
func (s *Store) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	var c Credentials
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	return &c, nil
}

// Save writes c with owner-only permissions.
func (s *Store) Save(c *Credentials) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling credentials: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

// Clear removes stored credentials. Clearing twice is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing credentials: %w", err)
	}
	return nil
}
