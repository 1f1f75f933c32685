package confmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssignReadRoundTrip(t *testing.T) {
	cases := []struct {
		path  string
		value any
	}{
		{"device", "cuda"},
		{"retrieval.top_k", 5.0},
		{"splitter.overlap.words", 12.0},
		{"generation.early_stopping", true},
		{"a.a.a", "repeated segments re-descend"},
	}
	for _, tc := range cases {
		cfg := Object{}
		require.NoError(t, Assign(cfg, tc.path, tc.value))

		got, ok := Read(cfg, tc.path)
		require.True(t, ok, "path %q should be present", tc.path)
		require.Equal(t, tc.value, got)
	}
}

func TestAssignReinitializesNonObjectIntermediates(t *testing.T) {
	cfg := Object{"splitter": "words"}
	require.NoError(t, Assign(cfg, "splitter.method", "sentences"))

	got, ok := Read(cfg, "splitter.method")
	require.True(t, ok)
	require.Equal(t, "sentences", got)
}

func TestAssignOverwritesSubtreeWithScalar(t *testing.T) {
	cfg := Object{}
	require.NoError(t, Assign(cfg, "logging.file.path", "/var/log/scribe.log"))
	require.NoError(t, Assign(cfg, "logging.file", "flat"))

	got, ok := Read(cfg, "logging.file")
	require.True(t, ok)
	require.Equal(t, "flat", got)

	_, ok = Read(cfg, "logging.file.path")
	require.False(t, ok, "old subtree should be unreachable")
}

func TestReadAbsentAndNonObject(t *testing.T) {
	cfg := Object{
		"logging": Object{"level": "INFO"},
		"tags":    []any{"a", "b"},
	}

	_, ok := Read(cfg, "logging.missing")
	require.False(t, ok)

	_, ok = Read(cfg, "missing.level")
	require.False(t, ok)

	// Scalars and arrays are opaque leaves; descending through them
	// reports absent rather than failing.
	_, ok = Read(cfg, "logging.level.deeper")
	require.False(t, ok)
	_, ok = Read(cfg, "tags.0")
	require.False(t, ok)

	v, ok := Read(cfg, "tags")
	require.True(t, ok)
	require.Equal(t, []any{"a", "b"}, v)
}

func TestMalformedPathsRejected(t *testing.T) {
	cfg := Object{}
	require.Error(t, Assign(cfg, "", 1))
	require.Error(t, Assign(cfg, "   ", 1))
	require.Error(t, Assign(cfg, "a..b", 1))
	require.Error(t, Assign(cfg, ".a", 1))
	require.Empty(t, cfg, "failed assigns must not mutate the target")

	_, ok := Read(Object{"a": 1}, "")
	require.False(t, ok)
}

func TestAssignNilTarget(t *testing.T) {
	require.Error(t, Assign(nil, "a.b", 1))
}
