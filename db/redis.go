package db

import (
	"context"
	"os"
	"time"

	"cee-backend/utils"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// InitRedis conecta el cliente Redis usado como contador compartido de
// rate limiting. Con varias instancias del backend, un mapa en memoria no
// coordina entre procesos; Redis sí.
func InitRedis() {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		utils.LogError(err, "REDIS_URL inválida")
		panic("Invalid REDIS_URL")
	}

	Redis = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		utils.LogError(err, "Error connecting to Redis")
		panic("Could not connect to Redis")
	}

	utils.LogSuccess("Redis connection successful")
}
