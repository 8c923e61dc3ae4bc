package repositories

import (
	"context"
	"errors"

	"github.com/casting-agency/api/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// ActorRepository defines data access for actors
type ActorRepository interface {
	List(ctx context.Context) ([]*models.Actor, error)
	GetByID(ctx context.Context, id int64) (*models.Actor, error)
	Create(ctx context.Context, actor *models.Actor) error
	Update(ctx context.Context, actor *models.Actor) error
	Delete(ctx context.Context, id int64) error
}

// MovieRepository defines data access for movies
type MovieRepository interface {
	List(ctx context.Context) ([]*models.Movie, error)
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	Create(ctx context.Context, movie *models.Movie) error
	Update(ctx context.Context, movie *models.Movie) error
	Delete(ctx context.Context, id int64) error
}
