package memory

import (
	_ "embed"
	"fmt"

	"infra-checklist/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultChecklistID is the checklist served when none is requested.
const DefaultChecklistID = "infra-ti"

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Checklists []domain.Checklist `yaml:"checklists"`
}

// DefaultChecklists parses the built-in catalog.
func DefaultChecklists() (map[string]domain.Checklist, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog decodes a YAML catalog keyed by checklist id.
func ParseCatalog(data []byte) (map[string]domain.Checklist, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	out := make(map[string]domain.Checklist, len(file.Checklists))
	for _, c := range file.Checklists {
		if c.ID == "" {
			return nil, fmt.Errorf("parse catalog: checklist without id")
		}
		out[c.ID] = c
	}
	return out, nil
}
