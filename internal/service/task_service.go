package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"taskapi/internal/apperr"
	"taskapi/internal/model"
	"taskapi/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Text        string
	CategoryIDs []uint
}

// TaskUpdate lists the fields to change. Nil fields are left alone; a
// non-nil empty CategoryIDs clears every category.
type TaskUpdate struct {
	Completed   *bool
	CategoryIDs *[]uint
}

// TaskService wraps task-related business logic. Every call is scoped to
// the given user; tasks of other users behave as if they did not exist.
type TaskService struct {
	store *repository.Store
}

func NewTaskService(store *repository.Store) *TaskService {
	return &TaskService{store: store}
}

// List returns the user's tasks newest first with categories attached.
// With a non-nil categoryID only tasks in that category are returned, and
// the category must belong to the user.
func (s *TaskService) List(ctx context.Context, userID uint, categoryID *uint) ([]model.Task, error) {
	if categoryID != nil {
		if _, err := s.store.Categories.FindByID(ctx, userID, *categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errCategoryNotFound()
			}
			return nil, err
		}
	}

	tasks, err := s.store.Tasks.ListByUser(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Tasks.Hydrate(ctx, tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (s *TaskService) CreateTask(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, apperr.Validation("task text is required")
	}

	var created model.Task
	err := s.store.WithTransaction(ctx, func(tx *repository.Store) error {
		ids, err := ownedCategoryIDs(ctx, tx, userID, input.CategoryIDs)
		if err != nil {
			return err
		}

		task := model.Task{UserID: userID, Text: text}
		if err := tx.Tasks.Create(ctx, &task); err != nil {
			return err
		}
		if err := tx.Tasks.ReplaceCategories(ctx, task.ID, ids); err != nil {
			return err
		}

		hydrated := []model.Task{task}
		if err := tx.Tasks.Hydrate(ctx, hydrated); err != nil {
			return err
		}
		created = hydrated[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask applies update atomically. The ownership check happens before
// anything is written.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uint, update TaskUpdate) (*model.Task, error) {
	var updated model.Task
	err := s.store.WithTransaction(ctx, func(tx *repository.Store) error {
		task, err := tx.Tasks.FindByID(ctx, userID, taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errTaskNotFound()
			}
			return err
		}

		if update.CategoryIDs != nil {
			ids, err := ownedCategoryIDs(ctx, tx, userID, *update.CategoryIDs)
			if err != nil {
				return err
			}
			if err := tx.Tasks.ReplaceCategories(ctx, task.ID, ids); err != nil {
				return err
			}
		}

		if update.Completed != nil {
			if err := tx.Tasks.SetCompleted(ctx, task, *update.Completed); err != nil {
				return err
			}
		}

		hydrated := []model.Task{*task}
		if err := tx.Tasks.Hydrate(ctx, hydrated); err != nil {
			return err
		}
		updated = hydrated[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask removes a task together with its category links.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uint) error {
	deleted, err := s.store.Tasks.Delete(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return errTaskNotFound()
	}
	return nil
}

// ownedCategoryIDs deduplicates ids and checks that every one names a
// category owned by userID.
func ownedCategoryIDs(ctx context.Context, store *repository.Store, userID uint, ids []uint) ([]uint, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return unique, nil
	}

	count, err := store.Categories.CountOwned(ctx, userID, unique)
	if err != nil {
		return nil, err
	}
	if count != int64(len(unique)) {
		return nil, apperr.Validation("one or more categories do not exist")
	}
	return unique, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func errTaskNotFound() error {
	return apperr.NotFound("task not found")
}
