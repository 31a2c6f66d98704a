package formengine

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/promotora-credito/app-cadastro/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultFiles embed.FS

// SectionsFile is the YAML document describing the sections of one form
type SectionsFile struct {
	FormKey  string               `yaml:"form_key"`
	Sections []models.FormSection `yaml:"sections"`
}

var (
	defaultsOnce sync.Once
	defaults     map[string][]models.FormSection
	defaultsErr  error
)

// ParseSectionsFile decodes and checks a sections YAML document. Every
// section is resolved so unsupported field types are reported here.
func ParseSectionsFile(data []byte) (*SectionsFile, error) {
	var file SectionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode sections: %w", err)
	}
	if file.FormKey == "" {
		return nil, fmt.Errorf("sections file has no form_key")
	}

	seen := make(map[models.SectionID]bool, len(file.Sections))
	for i := range file.Sections {
		s := &file.Sections[i]
		if seen[s.Section] {
			return nil, fmt.Errorf("section %s declared twice", s.Section)
		}
		seen[s.Section] = true
		s.FormKey = file.FormKey
		if !models.IsValidSectionID(s.Section) {
			return nil, fmt.Errorf("%w: %s", models.ErrUnknownSection, s.Section)
		}
		if _, err := NewSection(*s); err != nil {
			return nil, fmt.Errorf("section %s: %w", s.Section, err)
		}
	}
	return &file, nil
}

func loadDefaults() {
	defaults = make(map[string][]models.FormSection)
	defaultsErr = fs.WalkDir(defaultFiles, "defaults", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := defaultFiles.ReadFile(path)
		if err != nil {
			return err
		}
		file, err := ParseSectionsFile(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		defaults[file.FormKey] = file.Sections
		return nil
	})
}

// DefaultSections returns a copy of the built-in sections of a form key
func DefaultSections(formKey string) ([]models.FormSection, error) {
	defaultsOnce.Do(loadDefaults)
	if defaultsErr != nil {
		return nil, defaultsErr
	}

	sections, ok := defaults[formKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrSectionsNotFound, formKey)
	}
	out := make([]models.FormSection, len(sections))
	for i, s := range sections {
		s.Fields = append([]models.FieldDescriptor(nil), s.Fields...)
		out[i] = s
	}
	return out, nil
}
