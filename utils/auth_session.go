package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const AuthSessionPrefix = "authSession:"

// AuthSession is the view of the auth subsystem's persisted session that the
// reservation engine reads. Sessions are written by the (external) auth
// service; this package only looks them up.
type AuthSession struct {
	ClienteID     string    `json:"clienteId"`
	Email         string    `json:"email"`
	HasBilling    bool      `json:"hasBilling"`
	Status        string    `json:"status"` // e.g. "complete"
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// GetAuthSession retrieves a customer session from Redis.
func GetAuthSession(client *redis.Client, token string) (*AuthSession, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, AuthSessionPrefix+token).Result()
	if err != nil {
		return nil, err
	}
	var session AuthSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

// DeleteAuthSession removes a customer session from Redis.
func DeleteAuthSession(client *redis.Client, token string) error {
	ctx := context.Background()
	return client.Del(ctx, AuthSessionPrefix+token).Err()
}
