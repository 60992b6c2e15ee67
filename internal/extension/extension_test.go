package extension_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/richtextarea/internal/extension"
)

func TestSetAddSkipsSameInstance(t *testing.T) {
	var s extension.Set

	require.NoError(t, s.Add(extension.ListItem))
	require.NoError(t, s.Add(extension.BulletList))
	require.NoError(t, s.Add(extension.ListItem))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"bulletList", "listItem"}, s.Names())
}

func TestSetAddRejectsDifferentInstanceWithSameName(t *testing.T) {
	var s extension.Set
	require.NoError(t, s.Add(extension.Link(false)))

	err := s.Add(extension.Link(true))
	require.Error(t, err)
	assert.True(t, errors.Is(err, extension.ErrDuplicateModule))
	assert.Equal(t, 1, s.Len())
}

func TestSetAddOnce(t *testing.T) {
	var s extension.Set

	assert.True(t, s.AddOnce(extension.TextIndent()))
	assert.False(t, s.AddOnce(extension.TextIndent()))
	assert.Equal(t, 1, s.Len())
}

func TestNewSetBase(t *testing.T) {
	s, err := extension.NewSet(extension.Base()...)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc", "hardBreak", "paragraph", "text"}, s.Names())
	assert.Nil(t, s.Find("bold"))
}

func TestHeadingMerge(t *testing.T) {
	m, err := extension.Heading(3)
	require.NoError(t, err)

	opts := extension.HeadingConfig(m)
	require.NotNil(t, opts)
	opts.Merge(2, 3, 1)

	if diff := cmp.Diff([]int{1, 2, 3}, opts.Levels); diff != "" {
		t.Errorf("levels mismatch (-want +got):\n%s", diff)
	}
}

func TestHeadingRejectsOutOfRangeLevel(t *testing.T) {
	for _, level := range []int{0, 7, -1} {
		_, err := extension.Heading(level)
		assert.ErrorIs(t, err, extension.ErrInvalidOption, "level %d", level)
	}
}

func TestTextAlign(t *testing.T) {
	m, err := extension.TextAlign("left", "center")
	require.NoError(t, err)

	opts := extension.TextAlignConfig(m)
	opts.Merge("center", "right")
	assert.Equal(t, []string{"left", "center", "right"}, opts.Alignments)
	assert.Equal(t, []string{"heading", "paragraph"}, opts.Types)

	_, err = extension.TextAlign("middle")
	assert.ErrorIs(t, err, extension.ErrInvalidOption)
}

func TestConfigAccessorsOnForeignModule(t *testing.T) {
	assert.Nil(t, extension.HeadingConfig(extension.Bold))
	assert.Nil(t, extension.HeadingConfig(nil))
	assert.Equal(t, 5, extension.TextMarginConfig(extension.TextMargin(0)).MaxIndentLevel)
	assert.Equal(t, 140, extension.CharacterCountConfig(extension.CharacterCount(140)).Limit)
}
