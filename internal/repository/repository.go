package repository

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-referee/internal/entity"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrSignNotFound = errors.New("sign not found")
)

// GameRepository owns the id -> game mapping. Updates to a single game must
// appear atomic to concurrent readers.
type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	ListAll(ctx context.Context) ([]*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// SignRegistry owns the id -> human sign mapping. An entry is written once at
// game creation and removed together with its game.
type SignRegistry interface {
	Set(ctx context.Context, id string, mark entity.Mark) error
	Get(ctx context.Context, id string) (entity.Mark, error)
	DeleteByID(ctx context.Context, id string) error
}
