package form

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ragdeck/ragdeck/internal/confmap"
)

func testFields() []*Field {
	return []*Field{
		{Name: "documents_folder", Label: "Documents folder", Kind: Text, Value: "./docs"},
		{Name: "splitter.method", Label: "Splitter method", Kind: Text, Value: "words"},
		{Name: "splitter.words_per_context", Label: "Words per context", Kind: Number, Value: "200"},
		{Name: "generation.temperature", Label: "Temperature", Kind: Number, Value: "0.7"},
		{Name: "generation.early_stopping", Label: "Early stopping", Kind: Checkbox, Checked: true},
		{Name: "display.show_text_fragments", Label: "Show fragments", Kind: Checkbox},
	}
}

func TestNewRejectsMalformedNames(t *testing.T) {
	_, err := New(&Field{Name: "", Label: "Broken"})
	require.Error(t, err)

	_, err = New(&Field{Name: "a..b", Label: "Broken"})
	require.Error(t, err)

	_, err = New(&Field{Name: ".a", Label: "Broken"})
	require.Error(t, err)

	f, err := New(&Field{Name: "  trimmed.name  ", Label: "OK"})
	require.NoError(t, err)
	_, ok := f.Lookup("trimmed.name")
	require.True(t, ok)
}

func TestCollectCoercion(t *testing.T) {
	f, err := New(testFields()...)
	require.NoError(t, err)

	cfg := f.Collect()

	require.Equal(t, "./docs", cfg["documents_folder"])

	v, ok := confmap.Read(cfg, "splitter.words_per_context")
	require.True(t, ok)
	require.Equal(t, 200.0, v)

	v, ok = confmap.Read(cfg, "generation.early_stopping")
	require.True(t, ok)
	require.Equal(t, true, v)

	v, ok = confmap.Read(cfg, "display.show_text_fragments")
	require.True(t, ok)
	require.Equal(t, false, v)
}

func TestCollectNumericFallback(t *testing.T) {
	f, err := New(&Field{Name: "generation.temperature", Kind: Number, Value: "warm"})
	require.NoError(t, err)

	v, ok := confmap.Read(f.Collect(), "generation.temperature")
	require.True(t, ok)
	require.Equal(t, "warm", v, "unparseable numbers keep the raw string")
}

func TestCollectLastWriterWins(t *testing.T) {
	f, err := New(
		&Field{Name: "splitter.method", Kind: Text, Value: "words"},
		&Field{Name: "splitter.method", Kind: Text, Value: "sentences"},
	)
	require.NoError(t, err)

	v, ok := confmap.Read(f.Collect(), "splitter.method")
	require.True(t, ok)
	require.Equal(t, "sentences", v)
}

func TestFillAssignsMatchingLeaves(t *testing.T) {
	f, err := New(testFields()...)
	require.NoError(t, err)

	f.Fill(confmap.Object{
		"documents_folder": "/srv/docs",
		"splitter": confmap.Object{
			"method":            "paragraphs",
			"words_per_context": 150.0,
		},
		"generation": confmap.Object{
			"temperature":    1.5,
			"early_stopping": false,
		},
		"unknown": confmap.Object{"leaf": "ignored"},
	})

	folder, _ := f.Lookup("documents_folder")
	require.Equal(t, "/srv/docs", folder.Value)

	method, _ := f.Lookup("splitter.method")
	require.Equal(t, "paragraphs", method.Value)

	words, _ := f.Lookup("splitter.words_per_context")
	require.Equal(t, "150", words.Value)

	early, _ := f.Lookup("generation.early_stopping")
	require.False(t, early.Checked)

	// Fields with no corresponding leaf are left untouched.
	fragments, _ := f.Lookup("display.show_text_fragments")
	require.False(t, fragments.Checked)
}

func TestFillCollectRoundTrip(t *testing.T) {
	f, err := New(testFields()...)
	require.NoError(t, err)

	cfg := confmap.Object{
		"documents_folder": "/srv/docs",
		"splitter": confmap.Object{
			"method":            "sentences",
			"words_per_context": 120.0,
		},
		"generation": confmap.Object{
			"temperature":    0.9,
			"early_stopping": true,
		},
		"display": confmap.Object{"show_text_fragments": true},
	}

	f.Fill(cfg)
	collected := f.Collect()

	for _, path := range []string{
		"documents_folder",
		"splitter.method",
		"splitter.words_per_context",
		"generation.temperature",
		"generation.early_stopping",
		"display.show_text_fragments",
	} {
		want, ok := confmap.Read(cfg, path)
		require.True(t, ok)
		got, ok := confmap.Read(collected, path)
		require.True(t, ok, "collected config missing %q", path)
		require.Equal(t, want, got, "leaf %q should round-trip", path)
	}
}

func TestNumericRoundTripIsLossy(t *testing.T) {
	f, err := New(&Field{Name: "generation.temperature", Kind: Number, Value: "1.50"})
	require.NoError(t, err)

	f.Fill(f.Collect())

	field, _ := f.Lookup("generation.temperature")
	require.Equal(t, "1.5", field.Value, "display keeps the parsed value, not the original formatting")
}

func TestFormatScalar(t *testing.T) {
	require.Equal(t, "", FormatScalar(nil))
	require.Equal(t, "plain", FormatScalar("plain"))
	require.Equal(t, "true", FormatScalar(true))
	require.Equal(t, "3", FormatScalar(3.0))
	require.Equal(t, "0.25", FormatScalar(0.25))
	require.Equal(t, "7", FormatScalar(7))
}
