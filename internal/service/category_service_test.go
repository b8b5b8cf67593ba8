package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskapi/internal/apperr"
)

func TestCategoryService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice@example.com")
	bob := f.register(t, "bob@example.com")

	work, err := f.categories.Create(ctx, alice.ID, "  Work ")
	require.NoError(t, err)
	assert.Equal(t, "Work", work.Name)

	_, err = f.categories.Create(ctx, alice.ID, "Work")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = f.categories.Create(ctx, bob.ID, "Work")
	assert.NoError(t, err)

	_, err = f.categories.Create(ctx, alice.ID, "   ")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCategoryService_ListSortedByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice@example.com")
	f.category(t, alice.ID, "Work")
	f.category(t, alice.ID, "Errands")
	f.category(t, alice.ID, "Health")

	categories, err := f.categories.List(ctx, alice.ID)
	require.NoError(t, err)

	var names []string
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Errands", "Health", "Work"}, names)
}

func TestCategoryService_DeleteKeepsTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice@example.com")
	bob := f.register(t, "bob@example.com")
	work := f.category(t, alice.ID, "Work")

	task, err := f.tasks.CreateTask(ctx, alice.ID, TaskInput{Text: "report", CategoryIDs: []uint{work.ID}})
	require.NoError(t, err)
	require.Len(t, task.Categories, 1)

	err = f.categories.Delete(ctx, bob.ID, work.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, f.categories.Delete(ctx, alice.ID, work.ID))

	tasks, err := f.tasks.List(ctx, alice.ID, nil)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.Empty(t, tasks[0].Categories)

	err = f.categories.Delete(ctx, alice.ID, work.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
