package contextstore

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/gonzaloriv/travelsearch/internal/models"
)

// Store persists the per-conversation ContextState between turns. Get returns
// (nil, nil) for a conversation with no stored context yet; Save bumps the
// turn number.
type Store interface {
	Get(ctx context.Context, conversationID string) (*models.ContextState, error)
	Save(ctx context.Context, conversationID string, search *models.SearchContext) error
	Clear(ctx context.Context, conversationID string) error
	Close() error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  30 * time.Minute,
	}
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

func (s *RedisStore) Get(ctx context.Context, conversationID string) (*models.ContextState, error) {
	data, err := s.client.Get(ctx, key(conversationID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state models.ContextState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, conversationID string, search *models.SearchContext) error {
	prev, err := s.Get(ctx, conversationID)
	if err != nil {
		return err
	}

	state := nextState(prev, search)
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, key(conversationID), data, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, key(conversationID)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func key(conversationID string) string {
	return "travelctx:" + conversationID
}

func nextState(prev *models.ContextState, search *models.SearchContext) models.ContextState {
	turn := 1
	if prev != nil {
		turn = prev.TurnNumber + 1
	}
	return models.ContextState{LastSearch: search, TurnNumber: turn}
}

// MemoryStore keeps context in-process, for single-instance deployments and
// tests where Redis is disabled.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(ttl, 2*ttl)}
}

func (s *MemoryStore) Get(ctx context.Context, conversationID string) (*models.ContextState, error) {
	v, found := s.cache.Get(conversationID)
	if !found {
		return nil, nil
	}
	state := v.(models.ContextState)
	return &state, nil
}

func (s *MemoryStore) Save(ctx context.Context, conversationID string, search *models.SearchContext) error {
	prev, _ := s.Get(ctx, conversationID)
	s.cache.SetDefault(conversationID, nextState(prev, search))
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, conversationID string) error {
	s.cache.Delete(conversationID)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
