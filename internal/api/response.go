package api

import (
	"time"

	"taskapi/internal/model"
)

type userResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type authResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

type categoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type taskResponse struct {
	ID         uint               `json:"id"`
	Text       string             `json:"text"`
	Completed  bool               `json:"completed"`
	CreatedAt  time.Time          `json:"created_at"`
	UserID     uint               `json:"user_id"`
	Categories []categoryResponse `json:"categories"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func newCategoryResponse(c model.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name}
}

func newCategoryResponses(categories []model.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, newCategoryResponse(c))
	}
	return out
}

func newTaskResponse(t model.Task) taskResponse {
	return taskResponse{
		ID:         t.ID,
		Text:       t.Text,
		Completed:  t.Completed,
		CreatedAt:  t.CreatedAt.UTC(),
		UserID:     t.UserID,
		Categories: newCategoryResponses(t.Categories),
	}
}

func newTaskResponses(tasks []model.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskResponse(t))
	}
	return out
}
