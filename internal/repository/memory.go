package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-referee/internal/entity"
)

// memoryGame is the default, purely in-process game store. Games are stored
// by value so a caller can never observe a half-applied update through a
// shared pointer.
type memoryGame struct {
	mu    sync.RWMutex
	games map[string]entity.Game
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]entity.Game),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = *game

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}

	return &game, nil
}

func (that *memoryGame) ListAll(_ context.Context) ([]*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	games := make([]*entity.Game, 0, len(that.games))
	for _, game := range that.games {
		snapshot := game
		games = append(games, &snapshot)
	}

	return games, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

type memorySigns struct {
	mu    sync.RWMutex
	signs map[string]entity.Mark
}

func NewMemorySignRegistry() SignRegistry {
	return &memorySigns{
		signs: make(map[string]entity.Mark),
	}
}

func (that *memorySigns) Set(_ context.Context, id string, mark entity.Mark) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.signs[id] = mark

	return nil
}

func (that *memorySigns) Get(_ context.Context, id string) (entity.Mark, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	mark, ok := that.signs[id]
	if !ok {
		return 0, ErrSignNotFound
	}

	return mark, nil
}

func (that *memorySigns) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.signs, id)

	return nil
}
