package util_test

import (
	"errors"
	"testing"

	"github.com/ehtick/svelte/packages/compiler/src/util"
)

func TestParseSourceFile(t *testing.T) {
	file := util.NewParseSourceFile("<p>\n  {name}\n</p>", "App.svelte")

	t.Run("should resolve offsets into lines and columns", func(t *testing.T) {
		loc := file.LocationAt(6)
		if loc.Line != 1 || loc.Col != 2 {
			t.Errorf("LocationAt(6) = %d:%d, want 1:2", loc.Line, loc.Col)
		}
		if got := loc.String(); got != "App.svelte@1:2" {
			t.Errorf("String() = %q", got)
		}
	})

	t.Run("should clamp offsets past the end", func(t *testing.T) {
		if loc := file.LocationAt(100); loc.Offset != len(file.Content) || loc.Line != 2 {
			t.Errorf("unexpected location %+v", loc)
		}
	})

	t.Run("should mark negative offsets as unknown", func(t *testing.T) {
		if got := file.LocationAt(-5).String(); got != "App.svelte" {
			t.Errorf("String() = %q", got)
		}
	})

	t.Run("should return the text a span covers", func(t *testing.T) {
		if got := file.SpanOf(6, 12).String(); got != "{name}" {
			t.Errorf("String() = %q", got)
		}
	})
}

func TestParseError(t *testing.T) {
	file := util.NewParseSourceFile("<p>\n  {name}\n</p>", "App.svelte")

	t.Run("should quote the offending line", func(t *testing.T) {
		err := util.NewParseError(file.SpanOf(6, 12), "unexpected tag")
		if got := err.Error(); got != `unexpected tag ("{name}"): App.svelte@1:2` {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("should fall back to the message without a span", func(t *testing.T) {
		if got := util.NewParseError(nil, "broken").Error(); got != "broken" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("should unwrap the related error", func(t *testing.T) {
		cause := errors.New("cause")
		err := util.NewParseError(file.SpanOf(0, 0), "failed")
		err.RelatedError = cause
		if !errors.Is(err, cause) {
			t.Error("expected errors.Is to reach the related error")
		}
	})
}
