package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-referee/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-referee/internal/entity"
	"github.com/rocketscienceinc/tictactoe-referee/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	ListAll(ctx context.Context) ([]*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type signRegistry interface {
	Set(ctx context.Context, id string, mark entity.Mark) error
	Get(ctx context.Context, id string) (entity.Mark, error)
	DeleteByID(ctx context.Context, id string) error
}

// Referee coordinates the rules engine against the shared game store. Every
// read-modify-write sequence on a single game runs under that game's lock, so
// no two moves for the same id can interleave.
type Referee struct {
	logger *slog.Logger

	games  gameRepo
	signs  signRegistry
	engine *tictactoe.Engine
	locks  *keyedMutex
}

func NewReferee(logger *slog.Logger, games gameRepo, signs signRegistry, engine *tictactoe.Engine) *Referee {
	return &Referee{
		logger: logger.With("component", "referee"),

		games:  games,
		signs:  signs,
		engine: engine,
		locks:  newKeyedMutex(),
	}
}

// CreateGame - validates the candidate starting board, completes it per the
// engine's policy and stores the new game together with the human's sign.
func (that *Referee) CreateGame(ctx context.Context, boardStr string) (*entity.Game, error) {
	board, err := entity.ParseBoard(boardStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse starting board: %w", err)
	}

	board, humanMark, err := that.engine.StartGame(board)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	game := entity.NewGame(uuid.NewString(), board)

	unlock := that.locks.Lock(game.ID)
	defer unlock()

	if err = that.games.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.signs.Set(ctx, game.ID, humanMark); err != nil {
		return nil, fmt.Errorf("failed to register sign: %w", err)
	}

	that.logger.Info("game created", "game_id", game.ID, "human_sign", humanMark.String())

	return game, nil
}

// GetGame - returns a snapshot of the game.
func (that *Referee) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.games.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// ListGames - returns snapshots of all stored games.
func (that *Referee) ListGames(ctx context.Context) ([]*entity.Game, error) {
	games, err := that.games.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return games, nil
}

// MakeMove - applies the human player's proposed board to the game and, if
// the game is still running afterwards, the opponent's reply. A rejected move
// leaves the stored game unchanged.
func (that *Referee) MakeMove(ctx context.Context, id, boardStr string) (*entity.Game, error) {
	unlock := that.locks.Lock(id)
	defer unlock()

	game, err := that.games.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	proposed, err := entity.ParseBoard(boardStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMoveRejected, err)
	}

	humanMark, err := that.signs.Get(ctx, id)
	if err != nil {
		// a stored game without a sign entry is a broken invariant, not a bad request
		return nil, fmt.Errorf("failed to get sign for game %s: %w", id, err)
	}

	if err = that.engine.ApplyMove(game, proposed, humanMark); err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	if err = that.games.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if !game.IsRunning() {
		that.logger.Info("game finished", "game_id", game.ID, "status", game.Status.String())
	}

	return game, nil
}

// DeleteGame - removes the game and its sign entry, returning the removed
// snapshot.
func (that *Referee) DeleteGame(ctx context.Context, id string) (*entity.Game, error) {
	unlock := that.locks.Lock(id)
	defer unlock()

	game, err := that.games.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = that.games.DeleteByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete game by id: %w", err)
	}

	if err = that.signs.DeleteByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete sign by id: %w", err)
	}

	that.logger.Info("game deleted", "game_id", id)

	return game, nil
}
