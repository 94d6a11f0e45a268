package verification

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps codes in Redis so the verification state survives process
// restarts and is shared across replicas. Keys carry their TTL, so no janitor
// is needed.
type RedisStore struct {
	rdb  *redis.Client
	opts Options
}

func NewRedisStore(rdb *redis.Client, opts Options) *RedisStore {
	return &RedisStore{rdb: rdb, opts: opts.withDefaults()}
}

func codeKey(email string) string     { return "verify:code:" + email }
func attemptsKey(email string) string { return "verify:attempts:" + email }
func cooldownKey(email string) string { return "verify:cooldown:" + email }
func verifiedKey(email string) string { return "verify:ok:" + email }

func (s *RedisStore) Issue(ctx context.Context, email string) (string, error) {
	// SET NX on the cooldown key doubles as the resend throttle.
	ok, err := s.rdb.SetNX(ctx, cooldownKey(email), "1", s.opts.ResendCooldown).Result()
	if err != nil {
		return "", fmt.Errorf("verification store: %w", err)
	}
	if !ok {
		return "", ErrResendCooldown
	}

	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, codeKey(email), code, s.opts.CodeTTL)
	pipe.Set(ctx, attemptsKey(email), s.opts.MaxAttempts, s.opts.CodeTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("verification store: %w", err)
	}
	return code, nil
}

func (s *RedisStore) Verify(ctx context.Context, email, code string) error {
	stored, err := s.rdb.Get(ctx, codeKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeExpired
	}
	if err != nil {
		return fmt.Errorf("verification store: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		left, err := s.rdb.Decr(ctx, attemptsKey(email)).Result()
		if err != nil {
			return fmt.Errorf("verification store: %w", err)
		}
		if left <= 0 {
			s.rdb.Del(ctx, codeKey(email), attemptsKey(email))
			return ErrTooManyAttempts
		}
		return ErrInvalidCode
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, codeKey(email), attemptsKey(email))
	pipe.Set(ctx, verifiedKey(email), "1", s.opts.VerifiedTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("verification store: %w", err)
	}
	return nil
}

func (s *RedisStore) ConsumeVerified(ctx context.Context, email string) (bool, error) {
	_, err := s.rdb.GetDel(ctx, verifiedKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("verification store: %w", err)
	}
	return true, nil
}
