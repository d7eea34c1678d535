package flatfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/mockstore/internal/testutil"
	"github.com/mesh-intelligence/mockstore/pkg/serializer"
	"github.com/mesh-intelligence/mockstore/pkg/types"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, f fixture)
	}{
		{
			name: "generates a fresh id when none is given",
			check: func(t *testing.T, f fixture) {
				a, err := f.store.Create("", types.Record{"message": types.String("a")})
				require.NoError(t, err)
				b, err := f.store.Create("", types.Record{"message": types.String("b")})
				require.NoError(t, err)

				assert.Equal(t, "id-1", a.ID())
				assert.Equal(t, "id-2", b.ID())
				assert.Equal(t, `"id-1"`, f.file(t, "id-1", "id"))
			},
		},
		{
			name: "explicit id wins over payload id",
			check: func(t *testing.T, f fixture) {
				rec, err := f.store.Create("explicit", types.Record{"id": types.String("payload")})
				require.NoError(t, err)
				assert.Equal(t, "explicit", rec.ID())

				ok, err := f.store.Exists("payload")
				require.NoError(t, err)
				assert.False(t, ok)
			},
		},
		{
			name: "payload id is used when no explicit id",
			check: func(t *testing.T, f fixture) {
				rec, err := f.store.Create("", types.Record{"id": types.String("mine"), "message": types.String("x")})
				require.NoError(t, err)
				assert.Equal(t, "mine", rec.ID())
			},
		},
		{
			name: "round trips every attribute with display timestamps",
			check: func(t *testing.T, f fixture) {
				payload := types.Record{
					"message": types.String("Hello World"),
					"count":   types.Number(3),
					"draft":   types.Bool(true),
					"note":    types.Null(),
				}
				created, err := f.store.Create("", payload)
				require.NoError(t, err)

				got, err := f.store.Get(created.ID())
				require.NoError(t, err)
				for attr, want := range payload {
					assert.True(t, want.Equal(got[attr]), "attribute %s: want %s, got %s", attr, want, got[attr])
				}
				assert.Equal(t, "2024-01-15T10:30:00.000Z", got["created"].String())
				assert.Equal(t, "2024-01-15T10:30:00.000Z", got["updated"].String())
				assert.Equal(t, "messages", got["type"].String())
				assert.Equal(t, "https://api.example.com/v1/messages/id-1", got["self"].String())
				assert.Equal(t, created["created"], got["created"])

				assert.Equal(t, "1705314600", f.file(t, "id-1", "created"))
			},
		},
		{
			name: "parses supplied timestamps into raw seconds",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("t", types.Record{
					"created": types.String("2024-01-15T10:30:00.250Z"),
					"updated": types.Number(1705314601.5),
				})
				require.NoError(t, err)
				assert.Equal(t, "1705314600.25", f.file(t, "t", "created"))
				assert.Equal(t, "1705314601.5", f.file(t, "t", "updated"))

				v, err := f.store.GetAttr("t", "updated")
				require.NoError(t, err)
				assert.Equal(t, "2024-01-15T10:30:01.500Z", v.String())
			},
		},
		{
			name: "rejects an unparseable timestamp",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("t", types.Record{"created": types.String("yesterday")})
				require.ErrorIs(t, err, types.ErrInvalidInput)
			},
		},
		{
			name: "plural attribute given a scalar is stored as an array",
			check: func(t *testing.T, f fixture) {
				rec, err := f.store.Create("", types.Record{"message": types.String("Hello World"), "tags": types.String("tag")})
				require.NoError(t, err)
				assert.True(t, types.Strings("tag").Equal(rec["tags"]))
				assert.Equal(t, `["tag"]`, f.file(t, rec.ID(), "tags"))

				v, err := f.store.GetAttr(rec.ID(), "tags")
				require.NoError(t, err)
				assert.Equal(t, 1, v.Len())
			},
		},
		{
			name: "derives slug from name",
			check: func(t *testing.T, f fixture) {
				rec, err := f.store.Create("", types.Record{"name": types.String("Any impressive headline")})
				require.NoError(t, err)
				assert.Equal(t, "any-impressive-headline", rec["slug"].String())
				assert.Equal(t, `"any-impressive-headline"`, f.file(t, rec.ID(), "slug"))
			},
		},
		{
			name: "normalizes a supplied slug",
			check: func(t *testing.T, f fixture) {
				rec, err := f.store.Create("", types.Record{"slug": types.String("Müller & Söhne"), "name": types.String("ignored")})
				require.NoError(t, err)
				assert.Equal(t, "mueller-and-soehne", rec["slug"].String())
			},
		},
		{
			name: "rejects a slug that normalizes to nothing",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("", types.Record{"slug": types.String("!!!")})
				require.ErrorIs(t, err, types.ErrInvalidInput)
			},
		},
		{
			name: "rejects a non-string slug",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("", types.Record{"slug": types.Number(1)})
				require.ErrorIs(t, err, types.ErrInvalidInput)
			},
		},
		{
			name: "duplicate unique value conflicts and writes nothing",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("first", types.Record{"slug": types.String("hello")})
				require.NoError(t, err)

				_, err = f.store.Create("second", types.Record{"slug": types.String("Hello")})
				require.ErrorIs(t, err, types.ErrConflict)
				assert.Equal(t, 409, types.StatusCode(err))
				assert.False(t, testutil.Exists(t, f.fs, f.store.path("second")))
			},
		},
		{
			name: "existing id conflicts",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("dup", types.Record{"message": types.String("a")})
				require.NoError(t, err)
				_, err = f.store.Create("dup", types.Record{"message": types.String("b")})
				require.ErrorIs(t, err, types.ErrConflict)
			},
		},
		{
			name: "mismatched type is rejected",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("", types.Record{"type": types.String("users")})
				require.ErrorIs(t, err, types.ErrInvalidInput)
			},
		},
		{
			name: "empty payload is rejected",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("", nil)
				require.ErrorIs(t, err, types.ErrInvalidInput)
			},
		},
		{
			name: "self in the payload is ignored",
			check: func(t *testing.T, f fixture) {
				rec, err := f.store.Create("m", types.Record{"self": types.String("x"), "message": types.String("a")})
				require.NoError(t, err)
				assert.False(t, rec.Has("self"))
				assert.False(t, testutil.Exists(t, f.fs, f.store.attrPath("m", "self")))

				_, err = f.store.Create("", types.Record{"self": types.String("x")})
				require.ErrorIs(t, err, types.ErrInvalidInput, "nothing left to store")
			},
		},
		{
			name: "ids and attribute names must be single path segments",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("../escape", types.Record{"a": types.String("x")})
				require.ErrorIs(t, err, types.ErrInvalidInput)

				_, err = f.store.Create("", types.Record{".creating": types.String("x")})
				require.ErrorIs(t, err, types.ErrInvalidInput)
			},
		},
		{
			name: "no journal is left after a create",
			check: func(t *testing.T, f fixture) {
				rec, err := f.store.Create("", types.Record{"message": types.String("a")})
				require.NoError(t, err)
				assert.False(t, testutil.Exists(t, f.fs, f.store.attrPath(rec.ID(), journalCreating)))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, setupStore(t))
		})
	}
}

func TestCreateEmptyObject(t *testing.T) {
	f := setupStore(t, func(c *types.Config) { c.CreateEmptyObject = true })
	rec, err := f.store.Create("", types.Record{})
	require.NoError(t, err)
	assert.Equal(t, "messages", rec["type"].String())
}

func TestDisableSlugFromName(t *testing.T) {
	f := setupStore(t, func(c *types.Config) { c.DisableSlugFromName = true })
	rec, err := f.store.Create("", types.Record{"name": types.String("Some Name")})
	require.NoError(t, err)
	assert.False(t, rec.Has("slug"))
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, f fixture)
	}{
		{
			name: "rewrites attributes and bumps updated only",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("m", types.Record{"message": types.String("old")})
				require.NoError(t, err)

				out, err := f.store.Update("m", types.Record{"message": types.String("new")})
				require.NoError(t, err)
				assert.Equal(t, "2024-01-15T10:30:01.000Z", out["updated"].String())

				got, err := f.store.Get("m")
				require.NoError(t, err)
				assert.Equal(t, "new", got["message"].String())
				assert.Equal(t, "2024-01-15T10:30:00.000Z", got["created"].String())
				assert.Equal(t, "2024-01-15T10:30:01.000Z", got["updated"].String())
			},
		},
		{
			name: "accepts a fetched record as payload",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("m", types.Record{"message": types.String("old")})
				require.NoError(t, err)

				rec, err := f.store.Get("m")
				require.NoError(t, err)
				require.True(t, rec.Has("self"))
				rec["message"] = types.String("new")

				out, err := f.store.Update("", rec)
				require.NoError(t, err)
				assert.False(t, out.Has("self"))
				assert.False(t, testutil.Exists(t, f.fs, f.store.attrPath("m", "self")))

				got, err := f.store.Get("m", "message", "self")
				require.NoError(t, err)
				assert.Equal(t, "new", got["message"].String())
				assert.Equal(t, "https://api.example.com/v1/messages/m", got["self"].String())
			},
		},
		{
			name: "immutable attribute is left unchanged without error",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("m", types.Record{"message": types.String("x")})
				require.NoError(t, err)

				out, err := f.store.Update("m", types.Record{"type": types.String("users")})
				require.NoError(t, err)
				assert.False(t, out.Has("type"))

				v, err := f.store.GetAttr("m", "type")
				require.NoError(t, err)
				assert.Equal(t, "messages", v.String())
			},
		},
		{
			name: "id may come from the payload",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("m", types.Record{"message": types.String("x")})
				require.NoError(t, err)
				_, err = f.store.Update("", types.Record{"id": types.String("m"), "message": types.String("y")})
				require.NoError(t, err)
			},
		},
		{
			name: "missing id is rejected",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Update("", types.Record{"message": types.String("y")})
				require.ErrorIs(t, err, types.ErrInvalidInput)
			},
		},
		{
			name: "missing record is not found",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Update("ghost", types.Record{"message": types.String("y")})
				require.ErrorIs(t, err, types.ErrNotFound)
				assert.Equal(t, 404, types.StatusCode(err))
			},
		},
		{
			name: "keeping its own slug is not a conflict",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("m", types.Record{"name": types.String("Hello")})
				require.NoError(t, err)
				_, err = f.store.Update("m", types.Record{"name": types.String("Hello")})
				require.NoError(t, err)
			},
		},
		{
			name: "taking another record's slug conflicts",
			check: func(t *testing.T, f fixture) {
				_, err := f.store.Create("a", types.Record{"slug": types.String("a")})
				require.NoError(t, err)
				_, err = f.store.Create("b", types.Record{"slug": types.String("b")})
				require.NoError(t, err)

				_, err = f.store.Update("b", types.Record{"slug": types.String("a")})
				require.ErrorIs(t, err, types.ErrConflict)

				v, err := f.store.GetAttr("b", "slug")
				require.NoError(t, err)
				assert.Equal(t, "b", v.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, setupStore(t))
		})
	}
}

func TestTouch(t *testing.T) {
	f := setupStore(t)
	_, err := f.store.Create("m", types.Record{"message": types.String("x")})
	require.NoError(t, err)

	require.NoError(t, f.store.Touch("m"))
	v, err := f.store.GetAttr("m", "updated")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T10:30:01.000Z", v.String())

	require.ErrorIs(t, f.store.Touch("ghost"), types.ErrNotFound)
}

func TestUpdateAttr(t *testing.T) {
	f := setupStore(t)
	_, err := f.store.Create("m", types.Record{"message": types.String("x")})
	require.NoError(t, err)

	written, err := f.store.UpdateAttr("m", "message", types.String("y"))
	require.NoError(t, err)
	assert.True(t, written)
	got, err := f.store.Get("m", "message", "updated")
	require.NoError(t, err)
	assert.Equal(t, "y", got["message"].String())
	assert.Equal(t, "2024-01-15T10:30:01.000Z", got["updated"].String())

	written, err = f.store.UpdateAttr("m", "type", types.String("users"))
	require.NoError(t, err)
	assert.False(t, written)

	_, err = f.store.UpdateAttr("m", "id", types.String("other"))
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = f.store.UpdateAttr("m", "self", types.String("other"))
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = f.store.UpdateAttr("ghost", "message", types.String("y"))
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestAppendAndComputeWithoutValues(t *testing.T) {
	f := setupStore(t)
	rec, err := f.store.Create("", types.Record{"message": types.String("Hello World"), "tags": types.String("tag")})
	require.NoError(t, err)
	id := rec.ID()

	out, err := f.store.AppendValues(id, "tags", types.String("tag3"))
	require.NoError(t, err)
	assert.True(t, types.Strings("tag", "tag3").Equal(out))
	assert.Equal(t, `["tag","tag3"]`, f.file(t, id, "tags"))

	out, err = f.store.AppendValues(id, "tags", types.Strings("tag", "tag4"))
	require.NoError(t, err)
	assert.True(t, types.Strings("tag", "tag3", "tag", "tag4").Equal(out))

	without, err := f.store.ComputeWithoutValues(id, "tags", types.Strings("tag3", "tag4"))
	require.NoError(t, err)
	assert.True(t, types.Strings("tag", "tag").Equal(without))
	assert.Equal(t, `["tag","tag3","tag","tag4"]`, f.file(t, id, "tags"), "storage must not change")

	_, err = f.store.UpdateAttr(id, "tags", without)
	require.NoError(t, err)
	assert.Equal(t, `["tag","tag"]`, f.file(t, id, "tags"))
}

func TestAppendValuesErrors(t *testing.T) {
	f := setupStore(t)
	_, err := f.store.Create("m", types.Record{"message": types.String("x")})
	require.NoError(t, err)

	_, err = f.store.AppendValues("m", "message", types.String("y"))
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = f.store.AppendValues("ghost", "tags", types.String("y"))
	require.ErrorIs(t, err, types.ErrNotFound)

	out, err := f.store.AppendValues("m", "labels", types.String("first"))
	require.NoError(t, err)
	assert.True(t, types.Strings("first").Equal(out))

	_, err = f.store.ComputeWithoutValues("ghost", "tags", types.String("y"))
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestDelete(t *testing.T) {
	f := setupStore(t)
	for _, id := range []string{"a", "b", "c"} {
		_, err := f.store.Create(id, types.Record{"message": types.String(id)})
		require.NoError(t, err)
	}

	require.NoError(t, f.store.Delete("a", "b"))
	assert.False(t, testutil.Exists(t, f.fs, f.store.path("a")))
	assert.False(t, testutil.Exists(t, f.fs, f.store.path("b")))

	err := f.store.Delete("ghost", "c")
	require.ErrorIs(t, err, types.ErrNotFound)
	assert.NotErrorIs(t, err, types.ErrWriteFailed)
	assert.True(t, testutil.Exists(t, f.fs, f.store.path("c")), "fail fast leaves later ids alone")
}

func TestDeleteLeftoverTempFileFails(t *testing.T) {
	f := setupStore(t)
	_, err := f.store.Create("m", types.Record{"message": types.String("x")})
	require.NoError(t, err)
	testutil.WriteFile(t, f.fs, f.store.attrPath("m", tmpPrefix+"123"), []byte("partial"))

	err = f.store.Delete("m")
	require.ErrorIs(t, err, types.ErrWriteFailed)
	assert.Equal(t, 500, types.StatusCode(err))
}

func TestDeleteAttr(t *testing.T) {
	f := setupStore(t)
	for _, id := range []string{"a", "b"} {
		_, err := f.store.Create(id, types.Record{"message": types.String(id), "note": types.String(id)})
		require.NoError(t, err)
	}

	require.NoError(t, f.store.DeleteAttr([]string{"a", "b"}, []string{"message", "note"}))
	got, err := f.store.Get("a")
	require.NoError(t, err)
	assert.False(t, got.Has("message"))
	assert.False(t, got.Has("note"))

	err = f.store.DeleteAttr([]string{"a"}, []string{"message"})
	require.ErrorIs(t, err, types.ErrNotFound)

	err = f.store.DeleteAttr([]string{"a"}, []string{"self"})
	require.ErrorIs(t, err, types.ErrInvalidInput)

	err = f.store.DeleteAttr([]string{"ghost"}, []string{"message"})
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestGetAndFetch(t *testing.T) {
	f := setupStore(t)
	for _, id := range []string{"a", "b"} {
		_, err := f.store.Create(id, types.Record{"message": types.String("msg " + id)})
		require.NoError(t, err)
	}

	got, err := f.store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"created", "id", "message", "self", "type", "updated"}, got.Keys())

	only, err := f.store.Get("a", "message")
	require.NoError(t, err)
	assert.Equal(t, []string{"message"}, only.Keys())

	_, err = f.store.Get("a", "missing")
	require.ErrorIs(t, err, types.ErrNotFound)

	_, err = f.store.Get("ghost")
	require.ErrorIs(t, err, types.ErrNotFound)

	recs, err := f.store.Fetch([]string{"b", "a"}, "message")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "msg b", recs[0]["message"].String())
	assert.Equal(t, "msg a", recs[1]["message"].String())

	_, err = f.store.Fetch([]string{"a", "ghost"})
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestUndecodableAttributeIsReadFailure(t *testing.T) {
	f := setupStore(t)
	_, err := f.store.Create("m", types.Record{"message": types.String("x")})
	require.NoError(t, err)
	testutil.WriteFile(t, f.fs, f.store.attrPath("m", "message"), []byte("{not json"))

	_, err = f.store.GetAttr("m", "message")
	require.ErrorIs(t, err, types.ErrReadFailed)
}

func TestYAMLStore(t *testing.T) {
	f := setupStore(t, func(c *types.Config) { c.Serializer = serializer.YAML{} })
	_, err := f.store.Create("m", types.Record{"message": types.String("Hello World"), "tags": types.String("tag")})
	require.NoError(t, err)

	assert.Equal(t, "- tag\n", f.file(t, "m", "tags"))
	assert.Equal(t, "1705314600\n", f.file(t, "m", "created"))

	got, err := f.store.Get("m")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got["message"].String())
	assert.True(t, types.Strings("tag").Equal(got["tags"]))
}
