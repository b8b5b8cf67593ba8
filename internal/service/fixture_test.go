package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskapi/internal/auth"
	"taskapi/internal/model"
	"taskapi/internal/repository"
)

type fixture struct {
	store      *repository.Store
	auth       *AuthService
	tasks      *TaskService
	categories *CategoryService
	tokens     *auth.TokenManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := repository.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store := repository.NewStore(db)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return &fixture{
		store:      store,
		auth:       NewAuthService(store.Users, auth.NewBcryptHasher(bcrypt.MinCost), tokens),
		tasks:      NewTaskService(store),
		categories: NewCategoryService(store.Categories),
		tokens:     tokens,
	}
}

func (f *fixture) register(t *testing.T, email string) model.User {
	t.Helper()
	res, err := f.auth.Register(context.Background(), email, "password")
	require.NoError(t, err)
	return res.User
}

func (f *fixture) category(t *testing.T, userID uint, name string) model.Category {
	t.Helper()
	c, err := f.categories.Create(context.Background(), userID, name)
	require.NoError(t, err)
	return *c
}

func ids(categories []model.Category) []uint {
	out := make([]uint, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.ID)
	}
	return out
}

func ptr[T any](v T) *T { return &v }
