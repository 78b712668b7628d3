package store

import (
	"context"
	"encoding/json"

	"github.com/apex/log"
	"github.com/redis/go-redis/v9"

	"civicconnect-be/models"
)

// Storage keys, carried over from the original deployment.
const (
	redisIssuesKey   = "civic_connect_issues"
	redisCitizensKey = "civic_connect_users"
)

// RedisBackend persists each collection as a single JSON value under a fixed
// key. Data that fails to parse is treated as absent, which makes the store
// re-seed instead of crashing on a corrupt entry.
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) LoadIssues(ctx context.Context) ([]models.Issue, error) {
	data, err := b.client.Get(ctx, redisIssuesKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var issues []models.Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		log.WithError(err).Warn("could not parse stored issues, treating as empty")
		return nil, nil
	}
	return issues, nil
}

func (b *RedisBackend) SaveIssues(ctx context.Context, issues []models.Issue) error {
	data, err := json.Marshal(issues)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, redisIssuesKey, data, 0).Err()
}

func (b *RedisBackend) LoadCitizens(ctx context.Context) ([]models.Citizen, error) {
	data, err := b.client.Get(ctx, redisCitizensKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var citizens []models.Citizen
	if err := json.Unmarshal(data, &citizens); err != nil {
		log.WithError(err).Warn("could not parse stored citizens, treating as empty")
		return nil, nil
	}
	return citizens, nil
}

func (b *RedisBackend) SaveCitizens(ctx context.Context, citizens []models.Citizen) error {
	data, err := json.Marshal(citizens)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, redisCitizensKey, data, 0).Err()
}
