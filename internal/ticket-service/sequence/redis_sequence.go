package sequence

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Redis entrega números únicos de bilhete via INCR. O contador nunca
// retrocede, então um número emitido jamais se repete.
type Redis struct {
	Rdb *redis.Client
	Key string
}

func NewRedis(r *redis.Client, key string) *Redis { return &Redis{Rdb: r, Key: key} }

func (s *Redis) Next(ctx context.Context) (int64, error) {
	return s.Rdb.Incr(ctx, s.Key).Result()
}
