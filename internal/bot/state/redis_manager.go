package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// stateTTL auto-expires abandoned conversations.
const stateTTL = 24 * time.Hour

// RedisManager is the StateManager used when Redis is configured, so
// conversation state survives bot restarts.
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(redisHost, redisPort string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password:     "",
		DB:           0,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

func stateKey(userID int64) string {
	return fmt.Sprintf("user:%d:state", userID)
}

func tempKey(userID int64) string {
	return fmt.Sprintf("user:%d:temp", userID)
}

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(userID int64, state string) {
	m.client.Set(context.Background(), stateKey(userID), state, stateTTL)
}

// GetUserState gets the state for a user
func (m *RedisManager) GetUserState(userID int64) string {
	result := m.client.Get(context.Background(), stateKey(userID))
	if result.Err() != nil {
		return None
	}
	return result.Val()
}

// ClearUserState clears the state for a user
func (m *RedisManager) ClearUserState(userID int64) {
	m.client.Del(context.Background(), stateKey(userID))
}

// SetTempData sets a scratch value for a user
func (m *RedisManager) SetTempData(userID int64, key, value string) {
	tempData := m.getTempDataMap(userID)
	if tempData == nil {
		tempData = make(map[string]string)
	}
	tempData[key] = value
	m.saveTempDataMap(userID, tempData)
}

// GetTempData gets a scratch value for a user
func (m *RedisManager) GetTempData(userID int64, key string) (string, bool) {
	tempData := m.getTempDataMap(userID)
	if tempData == nil {
		return "", false
	}
	value, exists := tempData[key]
	return value, exists
}

// ClearTempData clears all scratch values for a user
func (m *RedisManager) ClearTempData(userID int64) {
	m.client.Del(context.Background(), tempKey(userID))
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}

func (m *RedisManager) getTempDataMap(userID int64) map[string]string {
	result := m.client.Get(context.Background(), tempKey(userID))
	if result.Err() != nil {
		return nil
	}

	var tempData map[string]string
	if err := json.Unmarshal([]byte(result.Val()), &tempData); err != nil {
		return nil
	}
	return tempData
}

func (m *RedisManager) saveTempDataMap(userID int64, tempData map[string]string) {
	data, err := json.Marshal(tempData)
	if err != nil {
		return
	}
	m.client.Set(context.Background(), tempKey(userID), data, stateTTL)
}
