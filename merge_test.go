package oparse

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	var verbose bool
	var output string
	base := New("base")
	require.NoError(t, base.BoolVar(&verbose, "verbose", "v", false, ""))
	extra := New("extra")
	require.NoError(t, extra.StringVar(&output, "output", "o", "", ""))
	require.NoError(t, extra.Annotate("output", "completion", "file"))

	require.NoError(t, base.Merge(extra, false))
	require.NotNil(t, base.Lookup("output"))

	require.NoError(t, base.Parse([]string{"-o", "x"}))
	assert.Equal(t, "x", output, "merged entries share the caller storage")
	assert.Equal(t, 1, base.Visits("output"))
	assert.Equal(t, 0, extra.Visits("output"), "visit accounting stays per registry")
}

func TestMergeClonesEntryState(t *testing.T) {
	var output string
	extra := New("extra")
	require.NoError(t, extra.StringVar(&output, "output", "", "", ""))
	require.NoError(t, extra.Annotate("output", "completion", "file"))
	require.NoError(t, extra.AddAlias("output", "path"))

	base := New("base")
	require.NoError(t, base.Merge(extra, false))

	require.NoError(t, base.Annotate("output", "completion", "dir"))
	assert.Equal(t, []string{"file"}, extra.Lookup("output").Annotations["completion"],
		"mutating the merged copy leaves the source alone")
	assert.Equal(t, []string{"file", "dir"}, base.Lookup("output").Annotations["completion"])

	require.NotNil(t, base.Lookup("path"), "aliases carry over")
	assert.NotSame(t, base.Lookup("output"), extra.Lookup("output"))
}

func TestMergeConflicts(t *testing.T) {
	var a, b, c string
	base := New("base")
	require.NoError(t, base.StringVar(&a, "output", "o", "", ""))

	extra := New("extra")
	require.NoError(t, extra.StringVar(&b, "input", "i", "", ""))
	require.NoError(t, extra.StringVar(&c, "output", "", "", ""))

	err := base.Merge(extra, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateName), "kind: %v", err)
	assert.Nil(t, base.Lookup("input"), "a failed merge adds nothing")

	require.NoError(t, base.Merge(extra, true))
	require.NotNil(t, base.Lookup("input"), "ignoreDuplicates keeps the rest")
	assert.Equal(t, "o", base.Lookup("output").Shorthand, "the original entry survives")
}

func TestMergeShorthandConflict(t *testing.T) {
	var a, b string
	base := New("base")
	require.NoError(t, base.StringVar(&a, "output", "o", "", ""))
	extra := New("extra")
	require.NoError(t, extra.StringVar(&b, "other", "o", "", ""))

	err := base.Merge(extra, false)
	assert.True(t, errors.Is(err, ErrDuplicateShorthand), "kind: %v", err)

	require.NoError(t, base.Merge(extra, true))
	assert.Nil(t, base.Lookup("other"), "the colliding entry was skipped")
}

func TestMergeVisitsReset(t *testing.T) {
	var verbose bool
	extra := New("extra")
	require.NoError(t, extra.BoolVar(&verbose, "verbose", "", false, ""))
	require.NoError(t, extra.Parse([]string{"--verbose"}))
	assert.Equal(t, 1, extra.Visits("verbose"))

	base := New("base")
	require.NoError(t, base.Merge(extra, false))
	assert.Equal(t, 0, base.Visits("verbose"), "clones arrive unvisited")
}

func TestMergeNil(t *testing.T) {
	base := New("base")
	require.NoError(t, base.Merge(nil, false))
	assert.False(t, base.HasFlags())
}
