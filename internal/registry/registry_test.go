package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestAddAndGet(t *testing.T) {
	r := openTestRegistry(t)

	added, err := r.Add("Liga Sudamericana", "https://host/tournament/liga")
	require.NoError(t, err)
	assert.True(t, added.Active, "new tournaments default to active")
	assert.NotZero(t, added.ID)

	got, err := r.Get("Liga Sudamericana")
	require.NoError(t, err)
	assert.Equal(t, added.ID, got.ID)
	assert.Equal(t, "https://host/tournament/liga", got.URL)
}

func TestAddRejectsDuplicateName(t *testing.T) {
	r := openTestRegistry(t)

	_, err := r.Add("Liga", "https://host/a")
	require.NoError(t, err)
	_, err = r.Add("Liga", "https://host/b")
	assert.Error(t, err)
}

func TestAddRejectsEmptyFields(t *testing.T) {
	r := openTestRegistry(t)

	_, err := r.Add("", "https://host/a")
	assert.Error(t, err)
	_, err = r.Add("Liga", "  ")
	assert.Error(t, err)
}

func TestActiveExcludesDisabled(t *testing.T) {
	r := openTestRegistry(t)

	_, err := r.Add("Liga", "https://host/a")
	require.NoError(t, err)
	_, err = r.Add("BCLA", "https://host/b")
	require.NoError(t, err)

	off := false
	_, err = r.Apply("BCLA", Update{Active: &off})
	require.NoError(t, err)

	all, err := r.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := r.Active()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Liga", active[0].Name)
}

func TestApplyPartialUpdate(t *testing.T) {
	r := openTestRegistry(t)

	_, err := r.Add("Liga", "https://host/a")
	require.NoError(t, err)

	newURL := "https://host/renamed"
	got, err := r.Apply("Liga", Update{URL: &newURL})
	require.NoError(t, err)
	assert.Equal(t, "Liga", got.Name, "untouched fields keep their values")
	assert.Equal(t, newURL, got.URL)
	assert.True(t, got.Active)
}

func TestApplyMissingTournament(t *testing.T) {
	r := openTestRegistry(t)

	_, err := r.Apply("nope", Update{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	r := openTestRegistry(t)

	_, err := r.Add("Liga", "https://host/a")
	require.NoError(t, err)

	require.NoError(t, r.Delete("Liga"))
	assert.ErrorIs(t, r.Delete("Liga"), ErrNotFound)

	_, err = r.Get("Liga")
	assert.ErrorIs(t, err, ErrNotFound)
}
