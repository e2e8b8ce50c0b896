package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"unicode"

	"golang.org/x/sync/errgroup"

	compiler "github.com/ehtick/svelte/packages/compiler/src"
	"github.com/ehtick/svelte/packages/compiler/src/config"
)

// build is one configured compilation of a set of inputs
type build struct {
	project *config.Project
	opts    *cliOptions
}

func newBuild(opts *cliOptions) (*build, error) {
	project := &config.Project{}
	if opts.configPath != "" {
		p, err := config.LoadFile(opts.configPath)
		if err != nil {
			return nil, err
		}
		project = p
	}
	return &build{project: project, opts: opts}, nil
}

// inputs lists the component files to compile: the project's include globs
// followed by every *.json file under the command-line paths.
func (b *build) inputs() ([]string, error) {
	files, err := b.project.Files()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		seen[f] = true
	}
	for _, root := range b.opts.paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".json") || seen[path] {
				return nil
			}
			seen[path] = true
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}
	}
	return files, nil
}

func (b *build) outputPath(input string) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".js"
	outDir := b.opts.outDir
	if outDir == "" && b.project.OutDir != "" {
		outDir = filepath.Join(b.project.Root(), b.project.OutDir)
	}
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), name)
	}
	return filepath.Join(outDir, name)
}

// run compiles every input concurrently. All files are attempted; the first
// failure is returned after the rest finish.
func (b *build) run() error {
	files, err := b.inputs()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No components found")
		return nil
	}
	fmt.Printf("Compiling %d component(s)\n", len(files))

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	var failed atomic.Int32
	for _, file := range files {
		g.Go(func() error {
			if err := b.compileFile(file); err != nil {
				failed.Add(1)
				fmt.Fprintf(os.Stderr, "  %s: %v\n", file, err)
				return err
			}
			return nil
		})
	}
	err = g.Wait()
	fmt.Printf("Compilation complete: %d/%d components compiled\n", len(files)-int(failed.Load()), len(files))
	return err
}

func (b *build) compileFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read component: %w", err)
	}
	opts := b.project.Options(config.WithName(componentName(path)))
	if b.opts.dev {
		opts.Dev = true
	}
	result, err := compiler.CompileJSON(data, path, opts)
	if err != nil {
		return err
	}

	out := b.outputPath(path)
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(result.JS+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if b.opts.verbose {
		mode := "legacy"
		if result.Runes {
			mode = "runes"
		}
		fmt.Printf("  %s -> %s (%s)\n", path, out, mode)
	}
	return nil
}

// componentName derives an identifier from a file name: `todo-list.json`
// becomes `TodoList`.
func componentName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var sb strings.Builder
	upper := true
	for _, r := range base {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	name := sb.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "Component" + name
	}
	return name
}
