package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mooncakehq/mooncake/internal/models"
)

const (
	timeFormat  = "2006-01-02 15:04:05"
	authKeyTpl  = "auth:%s" // auth:${user}
	tokenPrefix = "sk-mnck-"
)

// TokenManager mints and tracks API tokens in redis, the counterpart
// of Auth.ValidateToken. Used by the tokens admin command.
type TokenManager struct {
	redis *redis.Client
}

func NewTokenManager(redis *redis.Client) *TokenManager {
	return &TokenManager{redis: redis}
}

func generateToken() (string, error) {
	randomBytes := make([]byte, 12)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return tokenPrefix + hex.EncodeToString(randomBytes), nil
}

// FetchOrCreateUserToken returns the existing token for a user or
// mints one, updating request stats either way.
func (tm *TokenManager) FetchOrCreateUserToken(ctx context.Context, user string) (*models.TokenInfo, bool, error) {
	key := fmt.Sprintf(authKeyTpl, user)

	token, err := tm.redis.HGet(ctx, key, "token").Result()
	if err != nil && err != redis.Nil {
		return nil, false, fmt.Errorf("failed to check token: %w", err)
	}

	now := time.Now().UTC()
	isNewToken := false

	if err == redis.Nil {
		token, err = generateToken()
		if err != nil {
			return nil, false, fmt.Errorf("failed to generate token: %w", err)
		}

		pipe := tm.redis.Pipeline()
		pipe.HSet(ctx, key, map[string]interface{}{
			"token":                 token,
			"request_count":         1,
			"last_request_dttm_utc": now.Format(timeFormat),
			"created_dttm_utc":      now.Format(timeFormat),
		})

		if _, err := pipe.Exec(ctx); err != nil {
			return nil, false, fmt.Errorf("failed to create token: %w", err)
		}

		isNewToken = true
	} else {
		pipe := tm.redis.Pipeline()
		pipe.HIncrBy(ctx, key, "request_count", 1)
		pipe.HSet(ctx, key, "last_request_dttm_utc", now.Format(timeFormat))

		if _, err := pipe.Exec(ctx); err != nil {
			return nil, false, fmt.Errorf("failed to update token stats: %w", err)
		}
	}

	values, err := tm.redis.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get token info: %w", err)
	}

	lastReqTime, _ := time.Parse(timeFormat, values["last_request_dttm_utc"])
	createdTime, _ := time.Parse(timeFormat, values["created_dttm_utc"])
	reqCount, _ := strconv.Atoi(values["request_count"])

	return &models.TokenInfo{
		Token:           values["token"],
		RequestCount:    reqCount,
		LastRequestTime: lastReqTime,
		CreatedTime:     createdTime,
	}, isNewToken, nil
}

// RevokeUserToken drops the token so the next fetch mints a fresh one.
func (tm *TokenManager) RevokeUserToken(ctx context.Context, user string) error {
	key := fmt.Sprintf(authKeyTpl, user)
	return tm.redis.Del(ctx, key).Err()
}

func (tm *TokenManager) Close() error {
	if tm.redis != nil {
		return tm.redis.Close()
	}
	return nil
}
