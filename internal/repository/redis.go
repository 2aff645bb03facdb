package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-referee/internal/entity"
)

const (
	gameKeyPrefix = "game:"
	signKeyPrefix = "sign:"
)

// redisGame stores games in redis, for deployments that want the store shared
// between instances. Not the default profile.
type redisGame struct {
	client *redis.Client
}

func NewRedisGameRepository(client *redis.Client) GameRepository {
	return &redisGame{
		client: client,
	}
}

func (that *redisGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, gameKeyPrefix+game.ID, gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *redisGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKeyPrefix+id).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	var game entity.Game
	if err = json.Unmarshal([]byte(response), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

func (that *redisGame) ListAll(ctx context.Context) ([]*entity.Game, error) {
	var keys []string

	iter := that.client.Scan(ctx, 0, gameKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan games: %w", err)
	}

	if len(keys) == 0 {
		return []*entity.Game{}, nil
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	games := make([]*entity.Game, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			// key expired between SCAN and MGET
			continue
		}

		var game entity.Game
		if err = json.Unmarshal([]byte(raw), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game: %w", err)
		}

		games = append(games, &game)
	}

	return games, nil
}

func (that *redisGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, gameKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	if deleted == 0 {
		return ErrGameNotFound
	}

	return nil
}

type redisSigns struct {
	client *redis.Client
}

func NewRedisSignRegistry(client *redis.Client) SignRegistry {
	return &redisSigns{
		client: client,
	}
}

func (that *redisSigns) Set(ctx context.Context, id string, mark entity.Mark) error {
	if err := that.client.Set(ctx, signKeyPrefix+id, mark.String(), 0).Err(); err != nil {
		return fmt.Errorf("failed to set sign: %w", err)
	}

	return nil
}

func (that *redisSigns) Get(ctx context.Context, id string) (entity.Mark, error) {
	response, err := that.client.Get(ctx, signKeyPrefix+id).Result()

	if errors.Is(err, redis.Nil) {
		return 0, ErrSignNotFound
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get sign by ID: %w", err)
	}

	if len(response) != 1 || !entity.Mark(response[0]).IsPlayer() {
		return 0, fmt.Errorf("stored sign %q is not a player mark", response)
	}

	return entity.Mark(response[0]), nil
}

func (that *redisSigns) DeleteByID(ctx context.Context, id string) error {
	if err := that.client.Del(ctx, signKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete sign by ID: %w", err)
	}

	return nil
}
