package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrPackageSectionMissing indicates that [package] is missing in argon.toml.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing in argon.toml.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

// Manifest is the decoded argon.toml of a project.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the argon.toml layout.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Cache   CacheConfig   `toml:"cache"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	Sources        []string `toml:"sources"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
}

// CacheConfig controls the on-disk parse cache. Disk defaults to true when omitted.
type CacheConfig struct {
	Dir  string `toml:"dir"`
	Disk *bool  `toml:"disk"`
}

// DiskEnabled reports whether the on-disk parse cache should be used.
func (c CacheConfig) DiskEnabled() bool {
	return c.Disk == nil || *c.Disk
}

// LoadManifest decodes and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// SourcePaths returns [build].sources resolved against the project root.
func (m *Manifest) SourcePaths() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.Config.Build.Sources))
	for _, rel := range m.Config.Build.Sources {
		rel = strings.TrimSpace(rel)
		if rel == "" {
			continue
		}
		if filepath.IsAbs(rel) {
			out = append(out, filepath.Clean(rel))
			continue
		}
		out = append(out, filepath.Join(m.Root, filepath.FromSlash(rel)))
	}
	return out
}

// CacheDir returns [cache].dir resolved against the project root, or "".
func (m *Manifest) CacheDir() string {
	if m == nil || strings.TrimSpace(m.Config.Cache.Dir) == "" {
		return ""
	}
	dir := m.Config.Cache.Dir
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}
