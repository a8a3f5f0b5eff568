package plugin

import (
	"crypto/md5"

	"github.com/pkg/errors"
)

// Info contains plugin metadata
type Info struct {
	ID       string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	URL      string
	Email    string
	Category string // Plugin category (e.g., "Fx", "Instrument")
}

// UID derives a stable 16-byte class identifier from the string ID
func (i Info) UID() [16]byte {
	return md5.Sum([]byte(i.ID))
}

// ValidateUID checks that a class identifier can be derived
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return errors.New("plugin ID cannot be empty")
	}
	return nil
}
