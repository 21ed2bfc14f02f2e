// Package catalog holds the named use-case profiles a projection can be run
// against, and loads additional profiles from TOML, YAML or JSON files.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iwvelando/roi-forecast/internal/roi"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ErrUnknownProfile is returned by Lookup for keys not present in the catalog.
var ErrUnknownProfile = errors.New("unknown use case profile")

// Catalog maps profile keys to profiles. The zero value is empty and usable.
type Catalog struct {
	order    []string
	profiles map[string]roi.UseCaseProfile
}

// Entry pairs a profile with its catalog key.
type Entry struct {
	Key     string             `json:"key"`
	Profile roi.UseCaseProfile `json:"profile"`
}

// File is the on-disk layout of a catalog file.
type File struct {
	Profiles map[string]roi.UseCaseProfile `json:"profiles" yaml:"profiles" toml:"profiles"`
}

// New returns a catalog pre-populated with the built-in profiles.
func New() *Catalog {
	c := &Catalog{}
	for _, e := range builtins() {
		c.set(e.Key, e.Profile)
	}
	return c
}

func (c *Catalog) set(key string, profile roi.UseCaseProfile) {
	if c.profiles == nil {
		c.profiles = make(map[string]roi.UseCaseProfile)
	}
	if _, exists := c.profiles[key]; !exists {
		c.order = append(c.order, key)
	}
	c.profiles[key] = profile
}

// Add validates a profile and stores it under key, replacing any existing entry.
func (c *Catalog) Add(key string, profile roi.UseCaseProfile) error {
	key, err := checkEntry(key, profile)
	if err != nil {
		return err
	}
	c.set(key, profile)
	return nil
}

func checkEntry(key string, profile roi.UseCaseProfile) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("profile key cannot be empty")
	}
	if err := ValidateProfile(profile); err != nil {
		return "", fmt.Errorf("profile %s: %w", key, err)
	}
	return key, nil
}

// Lookup returns the profile stored under key.
func (c *Catalog) Lookup(key string) (roi.UseCaseProfile, error) {
	profile, ok := c.profiles[key]
	if !ok {
		return roi.UseCaseProfile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, key)
	}
	return profile, nil
}

// Keys returns the profile keys in insertion order, built-ins first.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.order...)
}

// Entries returns every profile in key order.
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, Entry{Key: key, Profile: c.profiles[key]})
	}
	return entries
}

// ValidateProfile checks the constraints a catalog profile must satisfy.
func ValidateProfile(p roi.UseCaseProfile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if !unitInterval(p.RevenueFactor) {
		return fmt.Errorf("revenueFactor must be within [0,1], got %g", p.RevenueFactor)
	}
	if !unitInterval(p.SavingsFactor) {
		return fmt.Errorf("savingsFactor must be within [0,1], got %g", p.SavingsFactor)
	}
	if len(p.ImpactCategories) != 3 {
		return fmt.Errorf("expected 3 impact categories, got %d", len(p.ImpactCategories))
	}
	if err := p.DefaultParameters().Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	return nil
}

func unitInterval(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// LoadFile reads a catalog file and merges its profiles into c. The format is
// chosen by file extension. Every profile is validated before any is merged,
// so a file with one bad profile leaves c unchanged.
func (c *Catalog) LoadFile(filePath string) error {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error accessing catalog file: %w", err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("error reading catalog file: %w", err)
	}

	file, err := Decode(fileData, filepath.Ext(filePath))
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(file.Profiles))
	for key := range file.Profiles {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		profile := file.Profiles[key]
		trimmed, err := checkEntry(key, profile)
		if err != nil {
			return fmt.Errorf("catalog %s: %w", filePath, err)
		}
		entries = append(entries, Entry{Key: trimmed, Profile: profile})
	}
	for _, e := range entries {
		c.set(e.Key, e.Profile)
	}
	return nil
}

// Decode parses catalog data in the format named by ext (".toml", ".yaml",
// ".yml" or ".json").
func Decode(data []byte, ext string) (*File, error) {
	var file File
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("error parsing TOML catalog: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("error parsing YAML catalog: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("error parsing JSON catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog file format: %s", ext)
	}
	return &file, nil
}
