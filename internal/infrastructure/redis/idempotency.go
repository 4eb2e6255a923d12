// Package redis guarda las claves de idempotencia de create-feedback en Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/davihchagas/feedback-system-project/internal/application/ports"
	"github.com/davihchagas/feedback-system-project/internal/domain"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// kv subconjunto de comandos usados; *goredis.Client lo satisface a través de adaptClient.
type kv interface {
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// IdempotencyStore implementación de ports.IdempotencyStore.
type IdempotencyStore struct {
	kv kv
}

// NewIdempotencyStore construye el store sobre un cliente ya conectado.
func NewIdempotencyStore(client *goredis.Client) *IdempotencyStore {
	return &IdempotencyStore{kv: clientKV{c: client}}
}

// Reserve SET NX con el marcador pendiente; si la clave ya existe devuelve su valor.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (string, error) {
	for range 2 {
		ok, err := s.kv.SetNX(ctx, key, ports.IdempotencyPending, ttl)
		if err != nil {
			return "", unavailable("reserve idempotency key", err)
		}
		if ok {
			return "", nil
		}
		val, found, err := s.kv.Get(ctx, key)
		if err != nil {
			return "", unavailable("read idempotency key", err)
		}
		if found {
			return val, nil
		}
		// la clave expiró entre SETNX y GET: reintentar la reserva
	}
	return ports.IdempotencyPending, nil
}

// Complete sustituye el marcador por el ID definitivo.
func (s *IdempotencyStore) Complete(ctx context.Context, key, id string, ttl time.Duration) error {
	return unavailable("complete idempotency key", s.kv.Set(ctx, key, id, ttl))
}

// Release borra la clave para que el cliente pueda reintentar.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return unavailable("release idempotency key", s.kv.Del(ctx, key))
}

func unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}

// Connect parsea la URL, crea el cliente y verifica con PING.
func Connect(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.PoolTimeout = 30 * time.Second
	opts.ConnMaxIdleTime = 5 * time.Minute

	client := goredis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type clientKV struct {
	c *goredis.Client
}

func (k clientKV) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return k.c.SetNX(ctx, key, value, ttl).Result()
}

func (k clientKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := k.c.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (k clientKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return k.c.Set(ctx, key, value, ttl).Err()
}

func (k clientKV) Del(ctx context.Context, key string) error {
	return k.c.Del(ctx, key).Err()
}
