package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ehtick/svelte/packages/compiler/src/config"
)

func TestCompileOptions(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		want := &config.CompileOptions{Name: "Component", RuntimeModule: config.DefaultRuntimeModule}
		if diff := cmp.Diff(want, config.NewCompileOptions()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should apply options in order", func(t *testing.T) {
		got := config.NewCompileOptions(
			config.WithDev(true),
			config.WithRunes(false),
			config.WithName("App"),
			config.WithName(""),
			config.WithFilename("App.svelte"),
			config.WithRuntimeModule(""),
			config.WithRuntimeVersion("5.1.0"),
		)
		want := &config.CompileOptions{
			Dev:            true,
			Runes:          config.BoolPtr(false),
			Name:           "App",
			Filename:       "App.svelte",
			RuntimeModule:  config.DefaultRuntimeModule,
			RuntimeVersion: "5.1.0",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestProject(t *testing.T) {
	t.Run("should parse a project file", func(t *testing.T) {
		project, err := config.Parse([]byte("dev: true\nruntimeVersion: 5.2.0\ninclude:\n  - src/*.svelte\noutDir: dist\n"))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if !project.Dev || project.RuntimeVersion != "5.2.0" || project.OutDir != "dist" {
			t.Errorf("unexpected project %+v", project)
		}
		if diff := cmp.Diff([]string{"src/*.svelte"}, project.Include); diff != "" {
			t.Errorf("Include mismatch (-want +got):\n%s", diff)
		}
		if project.Root() != "." {
			t.Errorf("Root() = %q, want .", project.Root())
		}
	})

	t.Run("should accept an empty file", func(t *testing.T) {
		project, err := config.Parse(nil)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if project.Runes != nil {
			t.Errorf("expected runes to be unset")
		}
	})

	t.Run("should reject unknown keys", func(t *testing.T) {
		if _, err := config.Parse([]byte("dev: true\nminify: true\n")); err == nil {
			t.Error("expected an error for an unknown key")
		}
	})

	t.Run("should convert settings into compile options", func(t *testing.T) {
		project, err := config.Parse([]byte("runes: true\nruntimeModule: my/runtime\n"))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		got := project.Options(config.WithName("Card"))
		want := &config.CompileOptions{
			Runes:         config.BoolPtr(true),
			Name:          "Card",
			RuntimeModule: "my/runtime",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should expand include globs relative to the project file", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"a.svelte", "b.svelte", "notes.txt"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("<p></p>"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		path := filepath.Join(dir, "svelte.yaml")
		if err := os.WriteFile(path, []byte("include:\n  - '*.svelte'\n  - a.svelte\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		project, err := config.LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		files, err := project.Files()
		if err != nil {
			t.Fatalf("Files() error = %v", err)
		}
		want := []string{filepath.Join(dir, "a.svelte"), filepath.Join(dir, "b.svelte")}
		if diff := cmp.Diff(want, files); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should report a missing project file", func(t *testing.T) {
		_, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil || !strings.Contains(err.Error(), "failed to read project file") {
			t.Errorf("unexpected error %v", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected the wrapped error to be os.ErrNotExist")
		}
	})
}

func TestCheckRuntime(t *testing.T) {
	t.Run("should skip the check without a version", func(t *testing.T) {
		if err := config.CheckRuntime("", []string{"async-init"}); err != nil {
			t.Errorf("unexpected error %v", err)
		}
	})

	t.Run("should accept a runtime providing every feature", func(t *testing.T) {
		if err := config.CheckRuntime("5.40.1", []string{"runes", "async-init", "unknown"}); err != nil {
			t.Errorf("unexpected error %v", err)
		}
	})

	t.Run("should list the missing features", func(t *testing.T) {
		err := config.CheckRuntime("4.2.0", []string{"runes", "async-init"})
		var compat *config.CompatibilityError
		if !errors.As(err, &compat) {
			t.Fatalf("expected a CompatibilityError, got %v", err)
		}
		if diff := cmp.Diff([]string{"async-init", "runes"}, compat.Features); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if got := err.Error(); got != "runtime 4.2.0 does not support: async-init, runes" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("should compare versions numerically", func(t *testing.T) {
		err := config.CheckRuntime("5.10.0", []string{"async-init"})
		var compat *config.CompatibilityError
		if !errors.As(err, &compat) {
			t.Fatalf("expected a CompatibilityError, got %v", err)
		}
	})

	t.Run("should reject an invalid version", func(t *testing.T) {
		err := config.CheckRuntime("next", nil)
		if err == nil || !strings.Contains(err.Error(), "invalid runtime version") {
			t.Errorf("unexpected error %v", err)
		}
	})
}
