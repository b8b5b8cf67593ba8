package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskapi/internal/model"
)

// TaskRepository handles CRUD for tasks and their category links.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// ListByUser returns the user's tasks newest first. A non-nil categoryID
// keeps only tasks linked to that category.
func (r *TaskRepository) ListByUser(ctx context.Context, userID uint, categoryID *uint) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("tasks.user_id = ?", userID)
	if categoryID != nil {
		q = q.Where("EXISTS (SELECT 1 FROM task_categories tc WHERE tc.task_id = tasks.id AND tc.category_id = ?)", *categoryID)
	}

	var tasks []model.Task
	if err := q.Order("tasks.created_at DESC, tasks.id DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) SetCompleted(ctx context.Context, task *model.Task, completed bool) error {
	if err := r.db.WithContext(ctx).Model(task).Update("completed", completed).Error; err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	task.Completed = completed
	return nil
}

// ReplaceCategories drops every link of the task and inserts one per id.
// Callers run it inside a transaction.
func (r *TaskRepository) ReplaceCategories(ctx context.Context, taskID uint, categoryIDs []uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("task_id = ?", taskID).Delete(&model.TaskCategory{}).Error; err != nil {
		return fmt.Errorf("clear task categories: %w", err)
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	links := make([]model.TaskCategory, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		links = append(links, model.TaskCategory{TaskID: taskID, CategoryID: id})
	}
	if err := db.Create(&links).Error; err != nil {
		return fmt.Errorf("link task categories: %w", err)
	}
	return nil
}

type taskCategoryRow struct {
	TaskID     uint
	CategoryID uint
	Name       string
}

// Hydrate fills Categories on every task with a single query. Tasks
// without links get an empty, non-nil slice.
func (r *TaskRepository) Hydrate(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(tasks))
	index := make(map[uint]int, len(tasks))
	for i := range tasks {
		tasks[i].Categories = []model.Category{}
		ids = append(ids, tasks[i].ID)
		index[tasks[i].ID] = i
	}

	var rows []taskCategoryRow
	if err := r.db.WithContext(ctx).Model(&model.TaskCategory{}).
		Select("task_categories.task_id, categories.id AS category_id, categories.name").
		Joins("JOIN categories ON categories.id = task_categories.category_id").
		Where("task_categories.task_id IN ?", ids).
		Order("categories.name ASC, categories.id ASC").
		Scan(&rows).Error; err != nil {
		return fmt.Errorf("load task categories: %w", err)
	}

	for _, row := range rows {
		i, ok := index[row.TaskID]
		if !ok {
			continue
		}
		tasks[i].Categories = append(tasks[i].Categories, model.Category{
			ID:     row.CategoryID,
			UserID: tasks[i].UserID,
			Name:   row.Name,
		})
	}
	return nil
}

// Delete removes a task owned by userID and reports whether a row was
// deleted. Category links cascade.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{})
	if res.Error != nil {
		return false, fmt.Errorf("delete task: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
