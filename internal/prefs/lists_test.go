package prefs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFavorites(t *testing.T) {
	f := NewFavorites(NewMemoryStore())

	ids, err := f.List()
	require.NoError(t, err)
	assert.Equal(t, []string{}, ids)

	require.NoError(t, f.Add("gpt-4o"))
	require.NoError(t, f.Add("claude-3-opus"))
	require.NoError(t, f.Add("gpt-4o"))

	ids, err = f.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o", "claude-3-opus"}, ids)

	now, err := f.Toggle("gpt-4o")
	require.NoError(t, err)
	assert.False(t, now)

	now, err = f.Toggle("llama")
	require.NoError(t, err)
	assert.True(t, now)

	ids, err = f.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"claude-3-opus", "llama"}, ids)

	ok, err := f.Contains("llama")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, f.Remove("missing"))
}

func TestFavorites_PersistAcrossInstances(t *testing.T) {
	s := NewFileStore(t.TempDir())
	require.NoError(t, NewFavorites(s).Add("gemini-1.5-pro"))

	ids, err := NewFavorites(s).List()
	require.NoError(t, err)
	assert.Equal(t, []string{"gemini-1.5-pro"}, ids)
}

func TestComparison_HoldsAtMostFour(t *testing.T) {
	c := NewComparison(NewMemoryStore())
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, c.Add(id))
	}
	require.NoError(t, c.Add("b"), "re-adding is a no-op even when full")
	assert.ErrorIs(t, c.Add("e"), ErrComparisonFull)

	require.NoError(t, c.Remove("b"))
	require.NoError(t, c.Add("e"))

	ids, err := c.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d", "e"}, ids)

	require.NoError(t, c.Clear())
	ids, err = c.List()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFavorites_StoreErrorsPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	boom := errors.New("disk full")

	store.EXPECT().Load(favoritesKey).Return(nil, false, nil)
	store.EXPECT().Save(favoritesKey, gomock.Any()).Return(boom)

	err := NewFavorites(store).Add("x")
	assert.ErrorIs(t, err, boom)
}

func TestComparison_CorruptDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	store.EXPECT().Load(comparisonKey).Return([]byte("not json"), true, nil)

	_, err := NewComparison(store).List()
	assert.ErrorContains(t, err, "decoding comparison")
}
