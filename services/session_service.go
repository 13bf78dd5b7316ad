package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionService is the Redis-backed token store. A login writes
// session:{userID} = token with a TTL; the auth middleware requires the stored
// token to exist and match the presented one, so logout and expiry revoke
// otherwise-valid JWTs.
type SessionService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionService(ttl time.Duration) *SessionService {
	return &SessionService{
		client: GetRedisClient(),
		ttl:    ttl,
	}
}

func sessionKey(userID primitive.ObjectID) string {
	return fmt.Sprintf("session:%s", userID.Hex())
}

// Store saves the user's session token with the configured TTL
func (ss *SessionService) Store(ctx context.Context, userID primitive.ObjectID, token string) error {
	return ss.client.Set(ctx, sessionKey(userID), token, ss.ttl).Err()
}

// Get returns the stored session token, or "" when no session exists
func (ss *SessionService) Get(ctx context.Context, userID primitive.ObjectID) (string, error) {
	token, err := ss.client.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Delete removes the user's session
func (ss *SessionService) Delete(ctx context.Context, userID primitive.ObjectID) error {
	return ss.client.Del(ctx, sessionKey(userID)).Err()
}
