package persist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rowloom/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "rowloom.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func samplePattern() domain.Pattern {
	return domain.Pattern{
		Name: "bracelet",
		Rows: []domain.Row{
			{Number: 1, Steps: []domain.Step{{Count: 3, Color: "A"}, {Count: 2, Color: "B"}}},
			{Number: 2, Steps: []domain.Step{{Count: 5, Color: "A"}}},
		},
	}
}

func TestSaveProjectAssignsIDs(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first, err := db.SaveProject(ctx, domain.Project{Name: "bracelet", Pattern: samplePattern()})
	require.NoError(t, err)
	require.Equal(t, 1, first.ID)
	require.False(t, first.CreatedAt.IsZero())

	second, err := db.SaveProject(ctx, domain.Project{Name: "cuff", Pattern: samplePattern()})
	require.NoError(t, err)
	require.Equal(t, 2, second.ID)

	got, err := db.GetProject(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "bracelet", got.Name)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, samplePattern(), got.Pattern)
}

func TestSaveProjectUpdatesExisting(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p, err := db.SaveProject(ctx, domain.Project{Name: "bracelet", Pattern: samplePattern()})
	require.NoError(t, err)

	p.Name = "bracelet v2"
	p.Position = domain.Position{Row: 1, Step: 0}
	_, err = db.SaveProject(ctx, p)
	require.NoError(t, err)

	got, err := db.GetProject(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "bracelet v2", got.Name)
	require.Equal(t, domain.Position{Row: 1, Step: 0}, got.Position)
}

func TestSaveProjectUnknownIDFails(t *testing.T) {
	db := openTestDB(t)
	_, err := db.SaveProject(context.Background(), domain.Project{ID: 42, Name: "ghost"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetProjectNotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := db.GetProject(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListProjectsOrdersByUpdate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	a, err := db.SaveProject(ctx, domain.Project{Name: "a", Pattern: samplePattern()})
	require.NoError(t, err)
	b, err := db.SaveProject(ctx, domain.Project{Name: "b", Pattern: samplePattern()})
	require.NoError(t, err)

	// Touch a so it becomes the most recently updated.
	require.NoError(t, db.SavePosition(ctx, a.ID, domain.Position{Row: 1, Step: 1}))

	list, err := db.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, a.ID, list[0].ID)
	require.Equal(t, b.ID, list[1].ID)
}

func TestDeleteProject(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p, err := db.SaveProject(ctx, domain.Project{Name: "a", Pattern: samplePattern()})
	require.NoError(t, err)

	require.NoError(t, db.DeleteProject(ctx, p.ID))
	_, err = db.GetProject(ctx, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, db.DeleteProject(ctx, p.ID), ErrNotFound)
}

func TestSavePositionAndMarkedRows(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p, err := db.SaveProject(ctx, domain.Project{Name: "a", Pattern: samplePattern()})
	require.NoError(t, err)

	require.NoError(t, db.SavePosition(ctx, p.ID, domain.Position{Row: 1, Step: 0}))
	require.NoError(t, db.SaveMarkedRows(ctx, p.ID, []int{1}))

	got, err := db.GetProject(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.Position{Row: 1, Step: 0}, got.Position)
	require.Equal(t, []int{1}, got.MarkedRows)

	require.ErrorIs(t, db.SavePosition(ctx, 99, domain.Position{}), ErrNotFound)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rowloom.db")
	ctx := context.Background()

	db, err := Open(ctx, path)
	require.NoError(t, err)
	p, err := db.SaveProject(ctx, domain.Project{Name: "a", Pattern: samplePattern()})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.GetProject(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "a", got.Name)
}
