package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ehtick/svelte/packages/compiler/src/config"
)

func TestComponentName(t *testing.T) {
	tests := map[string]string{
		"todo-list.json":     "TodoList",
		"dir/App.json":       "App",
		"card_item.json":     "Card_item",
		"404.json":           "Component404",
		"---.json":           "Component",
		"nested.button.json": "NestedButton",
	}
	for path, want := range tests {
		t.Run("should name "+path, func(t *testing.T) {
			if got := componentName(path); got != want {
				t.Errorf("componentName(%q) = %q, want %q", path, got, want)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	t.Run("should default to the current directory", func(t *testing.T) {
		opts, err := parseFlags(nil)
		if err != nil {
			t.Fatalf("parseFlags() error = %v", err)
		}
		if diff := cmp.Diff([]string{"."}, opts.paths); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should read flags before paths", func(t *testing.T) {
		opts, err := parseFlags([]string{"-dev", "-v", "-out", "dist", "a", "b"})
		if err != nil {
			t.Fatalf("parseFlags() error = %v", err)
		}
		if !opts.dev || !opts.verbose || opts.outDir != "dist" {
			t.Errorf("unexpected options %+v", opts)
		}
		if diff := cmp.Diff([]string{"a", "b"}, opts.paths); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestOutputPath(t *testing.T) {
	t.Run("should write next to the input by default", func(t *testing.T) {
		b := &build{project: &config.Project{}, opts: &cliOptions{}}
		if got := b.outputPath(filepath.Join("src", "App.json")); got != filepath.Join("src", "App.js") {
			t.Errorf("outputPath() = %q", got)
		}
	})

	t.Run("should prefer the command-line output directory", func(t *testing.T) {
		b := &build{project: &config.Project{OutDir: "build"}, opts: &cliOptions{outDir: "dist"}}
		if got := b.outputPath(filepath.Join("src", "App.json")); got != filepath.Join("dist", "App.js") {
			t.Errorf("outputPath() = %q", got)
		}
	})

	t.Run("should resolve the project output directory from its root", func(t *testing.T) {
		b := &build{project: &config.Project{OutDir: "build"}, opts: &cliOptions{}}
		if got := b.outputPath(filepath.Join("src", "App.json")); got != filepath.Join(".", "build", "App.js") {
			t.Errorf("outputPath() = %q", got)
		}
	})
}

func TestBuildRun(t *testing.T) {
	t.Run("should compile every component under a path", func(t *testing.T) {
		dir := t.TempDir()
		component := `{"type": "Root", "fragment": {"type": "Fragment", "nodes": [{"type": "Text", "data": "hi"}]}}`
		if err := os.WriteFile(filepath.Join(dir, "hello-world.json"), []byte(component), 0o644); err != nil {
			t.Fatal(err)
		}

		b := &build{project: &config.Project{}, opts: &cliOptions{paths: []string{dir}}}
		if err := b.run(); err != nil {
			t.Fatalf("run() error = %v", err)
		}
		js, err := os.ReadFile(filepath.Join(dir, "hello-world.js"))
		if err != nil {
			t.Fatalf("expected an output file: %v", err)
		}
		if !strings.Contains(string(js), "export default function HelloWorld($$anchor, $$props) {") {
			t.Errorf("unexpected output:\n%s", js)
		}
	})

	t.Run("should report components that fail to decode", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644); err != nil {
			t.Fatal(err)
		}
		b := &build{project: &config.Project{}, opts: &cliOptions{paths: []string{dir}}}
		if err := b.run(); err == nil {
			t.Error("expected an error")
		}
	})
}
