package concepts

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkstudio/inkstudio/pkg/models"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "concepts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	require.NoError(t, repo.Init(context.Background()))
	// running the schema twice is harmless
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestRepository_SaveGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	c := &models.Concept{
		Name:       "  Koi sleeve ",
		Summary:    "koi swimming upstream",
		Style:      models.StyleTraditional,
		Image:      "data:image/png;base64,AAAA",
		Placements: []string{"forearm", "calf"},
	}
	require.NoError(t, repo.Save(ctx, c))
	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Koi sleeve", got.Name)
	assert.Equal(t, models.StyleTraditional, got.Style)
	assert.Equal(t, []string{"forearm", "calf"}, got.Placements)
	assert.True(t, c.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_SaveInvalid(t *testing.T) {
	repo := newTestRepository(t)

	tests := []struct {
		name    string
		concept models.Concept
		wantErr error
	}{
		{"no name", models.Concept{Image: "x"}, models.ErrEmptyConceptName},
		{"no image", models.Concept{Name: "rose"}, models.ErrEmptyConceptImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Save(context.Background(), &tt.concept)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRepository_ListRemove(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		c := &models.Concept{Name: name, Image: "img", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, repo.Save(ctx, c))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Name)
	assert.Equal(t, "first", list[2].Name)

	require.NoError(t, repo.Remove(ctx, list[0].ID))
	assert.ErrorIs(t, repo.Remove(ctx, list[0].ID), ErrNotFound)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
