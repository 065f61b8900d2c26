// Package portfolio loads the owner's static record and renders it as chat
// answers and as the context prompt injected ahead of every completion.
package portfolio

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"portfolio-chat/internal/domain"
)

//go:embed default.json
var defaultRecord []byte

// Load reads the record at path. An empty path yields the embedded record.
func Load(path string) (domain.Portfolio, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(defaultRecord, ".json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Portfolio{}, errors.Wrap(err, "read portfolio")
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data as JSON or YAML depending on ext.
func Parse(data []byte, ext string) (domain.Portfolio, error) {
	var p domain.Portfolio

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &p); err != nil {
			return domain.Portfolio{}, errors.Wrap(err, "decode portfolio json")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return domain.Portfolio{}, errors.Wrap(err, "decode portfolio yaml")
		}
	default:
		return domain.Portfolio{}, errors.Errorf("unsupported portfolio format %q", ext)
	}

	if strings.TrimSpace(p.Profile.Name) == "" {
		return domain.Portfolio{}, errors.New("portfolio profile name is required")
	}
	return p, nil
}
