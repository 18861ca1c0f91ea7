package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"argon/internal/astcache"
	"argon/internal/codedb"
	"argon/internal/driver"
	"argon/internal/project"
)

const sourceExt = ".ar"

// runConfig is the merged view of flags and argon.toml; flags set on the
// command line win over the manifest.
type runConfig struct {
	manifest       *project.Manifest
	maxDiagnostics int
	timings        bool
	diskCache      bool
	cacheDir       string
}

func loadRunConfig(cmd *cobra.Command) (*runConfig, error) {
	flags := cmd.Root().PersistentFlags()
	cfg := &runConfig{diskCache: true}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if path, ok, err := project.FindManifest(wd); err != nil {
		return nil, err
	} else if ok {
		m, err := project.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		cfg.manifest = m
		cfg.cacheDir = m.CacheDir()
		cfg.diskCache = m.Config.Cache.DiskEnabled()
	}

	if cfg.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if cfg.manifest != nil && cfg.manifest.Config.Build.MaxDiagnostics > 0 && !flags.Changed("max-diagnostics") {
		cfg.maxDiagnostics = cfg.manifest.Config.Build.MaxDiagnostics
	}
	if cfg.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if flags.Changed("cache-dir") {
		if cfg.cacheDir, err = flags.GetString("cache-dir"); err != nil {
			return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
		}
	}
	noDisk, err := flags.GetBool("no-disk-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-disk-cache flag: %w", err)
	}
	if noDisk {
		cfg.diskCache = false
	}
	return cfg, nil
}

// newDriver builds a Driver over the real file system.
func (c *runConfig) newDriver(onPhase driver.PhaseObserver) (*driver.Driver, error) {
	opts := driver.Options{
		MaxDiagnostics: c.maxDiagnostics,
		EnableTimings:  c.timings,
		OnPhase:        onPhase,
	}
	if c.diskCache {
		dc, err := astcache.OpenDiskCache(c.cacheDir)
		if err != nil {
			return nil, fmt.Errorf("disk cache: %w", err)
		}
		opts.DiskCache = dc
	}
	return driver.New(codedb.OpenOS(), opts), nil
}

// inputs expands args (or [build].sources when args are empty) into
// source files; directories contribute every *.ar file beneath them.
func (c *runConfig) inputs(args []string) ([]string, error) {
	roots := args
	if len(roots) == 0 && c.manifest != nil {
		roots = c.manifest.SourcePaths()
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("no input files (pass paths or set [build].sources in %s)", project.ManifestName)
	}

	var out []string
	for _, root := range roots {
		st, err := os.Stat(root)
		if err != nil || !st.IsDir() {
			// отсутствующий файл превратится в диагностику
			out = append(out, root)
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, sourceExt) {
				out = append(out, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}
	sort.Strings(out)
	return out, nil
}
