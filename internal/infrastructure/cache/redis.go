// Package cache implementa ports.Cache sobre Redis. Si Redis no responde la API sigue
// funcionando: las lecturas fallan como miss y los candados se conceden localmente.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/pkg/config"
	"github.com/xurp-ia/xurp-api/pkg/logger"
)

var _ ports.Cache = (*Redis)(nil)

// Redis adaptador de caché. Un client nil significa caché deshabilitada.
type Redis struct {
	client *redis.Client
	log    *logger.Logger

	warnedUnavailable atomic.Bool
}

// NewRedis conecta con Redis. Con Host vacío o ping fallido devuelve un adaptador deshabilitado.
func NewRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *Redis {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Host == "" {
		log.Info().Msg("redis deshabilitado: sin REDIS_HOST")
		return &Redis{log: log}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr()).Msg("redis no disponible, se omite la caché")
		_ = client.Close()
		return &Redis{log: log}
	}
	return &Redis{client: client, log: log}
}

// NewFromClient envuelve un cliente existente.
func NewFromClient(client *redis.Client, log *logger.Logger) *Redis {
	if log == nil {
		log = logger.Nop()
	}
	return &Redis{client: client, log: log}
}

func (r *Redis) disabled() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.log.Warn().Err(err).Msg("redis no disponible, se omite la caché")
	}
}

// Available informa si Redis responde.
func (r *Redis) Available(ctx context.Context) bool {
	if r.disabled() {
		return false
	}
	return r.client.Ping(ctx).Err() == nil
}

// GetJSON lee y decodifica key en dest. Un error de Redis cuenta como miss.
func (r *Redis) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if r.disabled() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.warnOnce(err)
		}
		return false, nil
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, dest); err != nil {
		// Valor corrupto o de una versión anterior: se descarta.
		_ = r.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

// SetJSON guarda value serializado con ttl.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.disabled() {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnOnce(err)
	}
	return nil
}

// Delete borra las claves indicadas.
func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if r.disabled() || len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.warnOnce(err)
	}
	return nil
}

// releaseLock borra el candado solo si todavía guarda el token de quien lo tomó.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// AcquireLock candado con SETNX y un token por ejecución. Sin Redis el candado se concede.
func (r *Redis) AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if r.disabled() {
		return "", true, nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		r.warnOnce(err)
		return "", true, nil
	}
	return token, ok, nil
}

// ReleaseLock libera el candado si token sigue siendo el dueño; si expiró y otro lo tomó no hace nada.
func (r *Redis) ReleaseLock(ctx context.Context, key, token string) error {
	if r.disabled() || token == "" {
		return nil
	}
	if err := releaseLock.Run(ctx, r.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		r.warnOnce(err)
	}
	return nil
}

// Close cierra la conexión.
func (r *Redis) Close() error {
	if r.disabled() {
		return nil
	}
	return r.client.Close()
}
