package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlPartFile is the top-level structure of a part content file. A file may
// hold any number of parts.
type yamlPartFile struct {
	Parts []*Part `yaml:"parts"`
}

// yamlPropertyFile is the top-level structure of a property content file.
type yamlPropertyFile struct {
	Properties []*Property `yaml:"properties"`
}

// yamlProgressionFile is the top-level structure of the progression file:
// one table per archetype.
type yamlProgressionFile struct {
	Tables map[Archetype][]*ProgressionRow `yaml:"tables"`
}

// yamlFiles lists the .yaml files in dir in lexical order.
func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// LoadParts reads all .yaml files in dir and parses each as a part file.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed parts (may be empty slice) or a non-nil
// error; every returned part has a non-empty ID and Name.
func LoadParts(dir string) ([]*Part, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	var parts []*Part
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var f yamlPartFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing part file %s: %w", path, err)
		}
		for _, p := range f.Parts {
			if p.ID == "" || p.Name == "" {
				return nil, fmt.Errorf("part file %s: part id and name must not be empty", path)
			}
			if p.Kind != PartKindPower && p.Kind != PartKindTechnique {
				return nil, fmt.Errorf("part file %s: part %q kind must be power or technique, got %q", path, p.ID, p.Kind)
			}
		}
		parts = append(parts, f.Parts...)
	}
	return parts, nil
}

// LoadProperties reads all .yaml files in dir and parses each as a property
// file. Properties without an explicit currency factor default to 1.0.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed properties or a non-nil error; every
// returned property has a positive CurrencyFactor.
func LoadProperties(dir string) ([]*Property, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	var properties []*Property
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var f yamlPropertyFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing property file %s: %w", path, err)
		}
		for _, p := range f.Properties {
			if p.ID == "" || p.Name == "" {
				return nil, fmt.Errorf("property file %s: property id and name must not be empty", path)
			}
			if p.CurrencyFactor == 0 {
				p.CurrencyFactor = 1
			}
			if p.CurrencyFactor < 0 {
				return nil, fmt.Errorf("property file %s: property %q currency factor must be > 0, got %g", path, p.ID, p.CurrencyFactor)
			}
			if p.Option.HasContent() && p.Option.CurrencyFactor == 0 {
				p.Option.CurrencyFactor = 1
			}
		}
		properties = append(properties, f.Properties...)
	}
	return properties, nil
}

// LoadProgression reads and parses the progression table file.
//
// Precondition: path must point to a YAML file with one table per archetype.
// Postcondition: Returns the per-archetype tables or a non-nil error; every
// table is sorted by level and uses only known archetypes.
func LoadProgression(path string) (map[Archetype][]*ProgressionRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading progression file %s: %w", path, err)
	}
	var f yamlProgressionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing progression file %s: %w", path, err)
	}
	for arch, rows := range f.Tables {
		if !ValidArchetype(arch) {
			return nil, fmt.Errorf("progression file %s: unknown archetype %q", path, arch)
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Level < rows[j].Level })
		for _, row := range rows {
			if row.Level < 1 {
				return nil, fmt.Errorf("progression file %s: archetype %q level must be >= 1, got %d", path, arch, row.Level)
			}
		}
	}
	return f.Tables, nil
}

// LoadSnapshot loads a complete snapshot from a content directory layout:
// partsDir and propertiesDir hold content files, progressionPath the
// progression tables, mechanicsPath the mechanic-id mapping.
//
// Postcondition: Returns an indexed, validated Snapshot or a non-nil error.
func LoadSnapshot(partsDir, propertiesDir, progressionPath, mechanicsPath string) (*Snapshot, error) {
	parts, err := LoadParts(partsDir)
	if err != nil {
		return nil, err
	}
	properties, err := LoadProperties(propertiesDir)
	if err != nil {
		return nil, err
	}
	progression, err := LoadProgression(progressionPath)
	if err != nil {
		return nil, err
	}
	mechanics, err := LoadMechanicMap(mechanicsPath)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(parts, properties, progression, mechanics)
}
