package postgres

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/casting-agency/api/models"
	"github.com/casting-agency/api/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return &DB{DB: mockDB, logger: zap.NewNop()}, mock
}

func TestActorRepositoryList(t *testing.T) {
	t.Run("returns actors in id order", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewActorRepository(db, zap.NewNop())

		rows := sqlmock.NewRows([]string{"id", "name", "age", "gender"}).
			AddRow(1, "Steven Wilson", 30, "Male").
			AddRow(2, "Ana Torres", 41, "Female")
		mock.ExpectQuery("SELECT id, name, age, gender").WillReturnRows(rows)

		actors, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, actors, 2)
		assert.Equal(t, int64(1), actors[0].ID)
		assert.Equal(t, "Ana Torres", actors[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table returns empty slice", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewActorRepository(db, zap.NewNop())

		mock.ExpectQuery("SELECT id, name, age, gender").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age", "gender"}))

		actors, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, actors)
	})

	t.Run("query error is wrapped", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewActorRepository(db, zap.NewNop())

		mock.ExpectQuery("SELECT id, name, age, gender").
			WillReturnError(fmt.Errorf("connection reset"))

		_, err := repo.List(context.Background())
		assert.ErrorContains(t, err, "failed to query actors")
	})
}

func TestActorRepositoryGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewActorRepository(db, zap.NewNop())

		mock.ExpectQuery("SELECT id, name, age, gender").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age", "gender"}).
				AddRow(1, "Steven Wilson", 30, "Male"))

		actor, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Steven Wilson", actor.Name)
	})

	t.Run("missing row maps to ErrNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewActorRepository(db, zap.NewNop())

		mock.ExpectQuery("SELECT id, name, age, gender").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age", "gender"}))

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestActorRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActorRepository(db, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO actors (name, age, gender)")).
		WithArgs("Steven Wilson", 30, "Male").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	actor := models.NewActor("Steven Wilson", 30, "Male")
	require.NoError(t, repo.Create(context.Background(), actor))
	assert.Equal(t, int64(7), actor.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActorRepositoryUpdate(t *testing.T) {
	t.Run("updates row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewActorRepository(db, zap.NewNop())

		mock.ExpectExec("UPDATE actors").
			WithArgs(int64(3), "New Name", 35, "Male").
			WillReturnResult(sqlmock.NewResult(0, 1))

		actor := &models.Actor{ID: 3, Name: "New Name", Age: 35, Gender: "Male"}
		require.NoError(t, repo.Update(context.Background(), actor))
	})

	t.Run("zero rows affected maps to ErrNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewActorRepository(db, zap.NewNop())

		mock.ExpectExec("UPDATE actors").
			WithArgs(int64(99), "New Name", 35, "Male").
			WillReturnResult(sqlmock.NewResult(0, 0))

		actor := &models.Actor{ID: 99, Name: "New Name", Age: 35, Gender: "Male"}
		err := repo.Update(context.Background(), actor)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestActorRepositoryDelete(t *testing.T) {
	t.Run("deletes row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewActorRepository(db, zap.NewNop())

		mock.ExpectExec("DELETE FROM actors").
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), 5))
	})

	t.Run("zero rows affected maps to ErrNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewActorRepository(db, zap.NewNop())

		mock.ExpectExec("DELETE FROM actors").
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 99)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
