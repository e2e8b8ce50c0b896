package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project is the YAML project file read by the CLI
type Project struct {
	Dev            bool     `yaml:"dev"`
	Runes          *bool    `yaml:"runes"`
	RuntimeModule  string   `yaml:"runtimeModule"`
	RuntimeVersion string   `yaml:"runtimeVersion"`
	Include        []string `yaml:"include"`
	OutDir         string   `yaml:"outDir"`

	root string
}

// LoadFile reads and parses a project file
func LoadFile(path string) (*Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	project, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	project.root = filepath.Dir(absPath)
	return project, nil
}

// Parse decodes a project file held in memory. Unknown keys are rejected.
func Parse(data []byte) (*Project, error) {
	var project Project
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&project); err != nil && err != io.EOF {
		return nil, err
	}
	return &project, nil
}

// Root returns the directory include globs and OutDir are relative to
func (p *Project) Root() string {
	if p.root == "" {
		return "."
	}
	return p.root
}

// Files expands the include globs, in pattern order without duplicates
func (p *Project) Files() ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, pattern := range p.Include {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(p.Root(), pattern)
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// Options converts the project settings into compile options. Extra options
// are applied last.
func (p *Project) Options(extra ...CompileOption) *CompileOptions {
	opts := []CompileOption{
		WithDev(p.Dev),
		WithRuntimeModule(p.RuntimeModule),
		WithRuntimeVersion(p.RuntimeVersion),
	}
	if p.Runes != nil {
		opts = append(opts, WithRunes(*p.Runes))
	}
	return NewCompileOptions(append(opts, extra...)...)
}
