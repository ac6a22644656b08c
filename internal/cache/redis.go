package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys. List caches are per tenant and estado; "*" is the admin
// (unscoped) variant.
const (
	ModulosKey           = "modulos:catalogo"
	ConversacionesKeyFmt = "conversaciones:%s:%s"
)

var client *redis.Client

// Init initializes the Redis connection. The panel degrades gracefully
// without Redis: every Get returns a miss and Sets are dropped.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when unavailable).
func GetClient() *redis.Client {
	return client
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// ConversacionesKey builds the conversation list key for one tenant and
// estado filter. The admin variant uses "*"; an empty estado means the
// unfiltered list.
func ConversacionesKey(telefonoEmpresa, estado string) string {
	if telefonoEmpresa == "" {
		telefonoEmpresa = "*"
	}
	if estado == "" {
		estado = "todas"
	}
	return fmt.Sprintf(ConversacionesKeyFmt, telefonoEmpresa, estado)
}

// InvalidateConversacionCaches clears conversation list caches.
// Called when: EnviarRespuesta (estado changes to completado).
func InvalidateConversacionCaches(ctx context.Context) {
	InvalidatePattern(ctx, "conversaciones:*")
}

// InvalidateModuloCache clears the module catalog cache.
func InvalidateModuloCache(ctx context.Context) {
	InvalidateKeys(ctx, ModulosKey)
}
