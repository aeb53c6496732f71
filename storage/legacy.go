package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/moyoez/configd/settings"
)

const LegacyFileName = "config.json"

// Legacy reads the config.json the GUI used to keep in its app config dir.
type Legacy struct {
	Dir string
}

func NewLegacy(dir string) *Legacy {
	return &Legacy{Dir: dir}
}

// ReadLegacyConfig returns the raw file contents. Any failure is reported as
// settings.ErrLegacyRead.
func (l *Legacy) ReadLegacyConfig(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", settings.ErrLegacyRead, err)
	}
	path := filepath.Join(l.Dir, LegacyFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", settings.ErrLegacyRead, err)
	}
	return string(data), nil
}
