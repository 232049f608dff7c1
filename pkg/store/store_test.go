package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/Mindburn-Labs/sdui/pkg/registry"
	"github.com/Mindburn-Labs/sdui/pkg/token"
	"github.com/Mindburn-Labs/sdui/pkg/value"
)

var fixed = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	s := New(db, DialectSQLite, WithClock(func() time.Time { return fixed }))
	require.NoError(t, s.Init(context.Background()))
	return s
}

func text(id string, version int, s string) *token.Text {
	return &token.Text{Base: token.Base{ID: id, Version: version}, Text: value.TemplateString(s)}
}

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	rec, err := s.Put(ctx, text("title", 1, "v1"))
	require.NoError(t, err)
	assert.Equal(t, "title", rec.ID)
	assert.Equal(t, token.KindText, rec.Kind)
	assert.Len(t, rec.Digest, 64)

	_, err = s.Put(ctx, text("title", 2, "v2"))
	require.NoError(t, err)

	latest, err := s.Get(ctx, "title")
	require.NoError(t, err)
	assert.Equal(t, text("title", 2, "v2"), latest)

	old, err := s.GetVersion(ctx, "title", 1)
	require.NoError(t, err)
	assert.Equal(t, text("title", 1, "v1"), old)

	versions, err := s.Versions(ctx, "title")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, versions)

	t.Run("upsert same version", func(t *testing.T) {
		_, err := s.Put(ctx, text("title", 2, "v2b"))
		require.NoError(t, err)
		got, err := s.Get(ctx, "title")
		require.NoError(t, err)
		assert.Equal(t, value.TemplateString("v2b"), got.(*token.Text).Text)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.GetVersion(ctx, "title", 9)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_PutRejects(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for name, n := range map[string]token.Node{
		"nil":         nil,
		"blank id":    text(" ", 1, "x"),
		"bad version": text("x", 0, "x"),
	} {
		_, err := s.Put(ctx, n)
		assert.ErrorIs(t, err, ErrInvalidArgument, name)
	}
}

func TestStore_ListAndLoadInto(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	card := &token.Card{Base: token.Base{ID: "card", Version: 1}, Children: token.NodeList{text("title", 1, "{{t}}")}}
	for _, n := range []token.Node{card, text("title", 1, "{{t}}"), text("title", 3, "{{t}}!"), text("alone", 2, "x")} {
		_, err := s.Put(ctx, n)
		require.NoError(t, err)
	}

	recs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"alone", "card", "title"}, []string{recs[0].ID, recs[1].ID, recs[2].ID})
	assert.Equal(t, 3, recs[2].Version)
	assert.True(t, fixed.Equal(recs[2].UpdatedAt), recs[2].UpdatedAt)

	r := registry.New()
	n, err := s.LoadInto(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	got, ok := r.Get("title")
	require.True(t, ok)
	assert.Equal(t, 3, got.Common().Version)

	require.NoError(t, s.Delete(ctx, "alone"))
	assert.ErrorIs(t, s.Delete(ctx, "alone"), ErrNotFound)
	recs, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestStore_PostgresQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := New(db, DialectPostgres, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sdui_tokens (id, version, kind, digest, body, updated_at) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id, version)")).
		WithArgs("title", 1, "Text", sqlmock.AnyArg(), `{"id":"title","text":"hi","type":"Text","version":1}`, fixed).
		WillReturnResult(sqlmock.NewResult(1, 1))
	_, err = s.Put(ctx, text("title", 1, "hi"))
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT body FROM sdui_tokens WHERE id = $1 ORDER BY version DESC LIMIT 1")).
		WithArgs("title").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow(`{"type":"Text","id":"title","version":1,"text":"hi"}`))
	got, err := s.Get(ctx, "title")
	require.NoError(t, err)
	assert.Equal(t, text("title", 1, "hi"), got)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT body FROM sdui_tokens WHERE id = $1 AND version = $2")).
		WithArgs("title", 7).
		WillReturnRows(sqlmock.NewRows([]string{"body"}))
	_, err = s.GetVersion(ctx, "title", 7)
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sdui_tokens WHERE id = $1")).
		WithArgs("title").
		WillReturnError(errors.New("connection reset"))
	err = s.Delete(ctx, "title")
	assert.ErrorContains(t, err, "connection reset")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDialectOf(t *testing.T) {
	tests := []struct {
		driver string
		want   Dialect
		err    bool
	}{
		{"sqlite", DialectSQLite, false},
		{"sqlite3", DialectSQLite, false},
		{"postgres", DialectPostgres, false},
		{"PQ", DialectPostgres, false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		got, err := DialectOf(tt.driver)
		if tt.err {
			assert.ErrorIs(t, err, ErrInvalidArgument)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
