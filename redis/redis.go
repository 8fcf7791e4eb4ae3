package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// SetResetCode stores a password reset code for the email with a TTL.
func SetResetCode(email, code string, ttl time.Duration) error {
	return Client.Set(Ctx, "reset:"+email, code, ttl).Err()
}

// GetResetCode returns the stored reset code for the email, or "" if it
// expired or was never set.
func GetResetCode(email string) (string, error) {
	code, err := Client.Get(Ctx, "reset:"+email).Result()
	if err == redis.Nil {
		return "", nil
	}
	return code, err
}

// DeleteResetCode removes the reset code once it has been used.
func DeleteResetCode(email string) error {
	return Client.Del(Ctx, "reset:"+email).Err()
}
