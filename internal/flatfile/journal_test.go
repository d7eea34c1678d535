package flatfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/mockstore/internal/testutil"
	"github.com/mesh-intelligence/mockstore/pkg/types"
)

func TestRecover(t *testing.T) {
	f := setupStore(t)
	_, err := f.store.Create("done", types.Record{"message": types.String("kept")})
	require.NoError(t, err)
	_, err = f.store.Create("updating", types.Record{"message": types.String("old")})
	require.NoError(t, err)

	// An interrupted create: journal plus one of two attributes.
	testutil.WriteFile(t, f.fs, f.store.attrPath("half", journalCreating), []byte(`["id","message"]`))
	testutil.WriteFile(t, f.fs, f.store.attrPath("half", "id"), []byte(`"half"`))
	// A staged create that was never renamed into place.
	testutil.WriteFile(t, f.fs, f.store.attrPath(stagedID("staged"), journalCreating), []byte(`["id"]`))
	testutil.WriteFile(t, f.fs, f.store.attrPath(stagedID("staged"), "id"), []byte(`"staged"`))
	// An interrupted update with a stray temp file.
	testutil.WriteFile(t, f.fs, f.store.attrPath("updating", journalUpdating), []byte(`["message","updated"]`))
	testutil.WriteFile(t, f.fs, f.store.attrPath("updating", tmpPrefix+"42"), []byte(`"new"`))
	// A stray temp file in a complete record.
	testutil.WriteFile(t, f.fs, f.store.attrPath("done", tmpPrefix+"7"), []byte(`"x"`))

	recovered, err := f.store.Recover()
	require.NoError(t, err)
	assert.Equal(t, []types.Recovery{
		{ID: "staged", RolledBack: true, Attributes: []string{"id"}},
		{ID: "done"},
		{ID: "half", RolledBack: true, Attributes: []string{"id", "message"}},
		{ID: "updating", Attributes: []string{"message", "updated"}},
	}, recovered)

	assert.False(t, testutil.Exists(t, f.fs, f.store.path(stagedID("staged"))))
	for _, id := range []string{"half", "staged"} {
		ok, err := f.store.Exists(id)
		require.NoError(t, err)
		assert.False(t, ok, id)
	}
	assert.False(t, testutil.Exists(t, f.fs, f.store.attrPath("updating", journalUpdating)))
	assert.False(t, testutil.Exists(t, f.fs, f.store.attrPath("updating", tmpPrefix+"42")))

	got, err := f.store.Get("done", "message")
	require.NoError(t, err)
	assert.Equal(t, "kept", got["message"].String())

	// Deleting works again once the temp file is gone.
	require.NoError(t, f.store.Delete("done"))

	again, err := f.store.Recover()
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestRecoverEmptyType(t *testing.T) {
	f := setupStore(t)
	recovered, err := f.store.Recover()
	require.NoError(t, err)
	assert.Empty(t, recovered)
}

func TestRecoverKeepsRecordWithoutAttributes(t *testing.T) {
	f := setupStore(t)
	_, err := f.store.Create("m", types.Record{"message": types.String("hi")})
	require.NoError(t, err)

	stored, err := f.store.storedAttributes("m")
	require.NoError(t, err)
	require.NoError(t, f.store.DeleteAttr([]string{"m"}, stored))

	ok, err := f.store.Exists("m")
	require.NoError(t, err)
	require.True(t, ok)

	recovered, err := f.store.Recover()
	require.NoError(t, err)
	assert.Empty(t, recovered)

	ok, err = f.store.Exists("m")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateStagesRecord(t *testing.T) {
	f := setupStore(t)
	// Leftovers of an earlier interrupted create of the same id.
	testutil.WriteFile(t, f.fs, f.store.attrPath(stagedID("m"), "stale"), []byte(`"x"`))

	_, err := f.store.Create("m", types.Record{"message": types.String("hi")})
	require.NoError(t, err)

	assert.False(t, testutil.Exists(t, f.fs, f.store.path(stagedID("m"))))
	assert.False(t, testutil.Exists(t, f.fs, f.store.attrPath("m", journalCreating)))
	assert.False(t, testutil.Exists(t, f.fs, f.store.attrPath("m", "stale")))

	got, err := f.store.Get("m", "message")
	require.NoError(t, err)
	assert.Equal(t, "hi", got["message"].String())

	ids, err := f.store.Find(types.Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"m"}, ids)
}
