package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"talentmatch-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "wizard:session:"

// wizardRepository persists wizard sessions in Redis with a TTL so
// abandoned drafts expire on their own. When Redis is not configured the
// repository falls back to an in-process map; sessions then survive only
// as long as the process does.
type wizardRepository struct {
	client *redis.Client
	ttl    time.Duration

	mu       sync.RWMutex
	fallback map[string]fallbackEntry
}

type fallbackEntry struct {
	payload   []byte
	expiresAt time.Time
}

func NewWizardRepository(client *redis.Client, ttl time.Duration) domain.WizardRepository {
	return &wizardRepository{
		client:   client,
		ttl:      ttl,
		fallback: map[string]fallbackEntry{},
	}
}

func (r *wizardRepository) Save(ctx context.Context, session *domain.WizardSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if r.client == nil {
		r.mu.Lock()
		r.fallback[session.ID] = fallbackEntry{payload: payload, expiresAt: time.Now().Add(r.ttl)}
		r.mu.Unlock()
		return nil
	}

	if err := r.client.Set(ctx, keyPrefix+session.ID, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *wizardRepository) Get(ctx context.Context, id string) (*domain.WizardSession, error) {
	var payload []byte

	if r.client == nil {
		r.mu.RLock()
		entry, ok := r.fallback[id]
		r.mu.RUnlock()
		if !ok || time.Now().After(entry.expiresAt) {
			return nil, domain.ErrSessionNotFound
		}
		payload = entry.payload
	} else {
		data, err := r.client.Get(ctx, keyPrefix+id).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, domain.ErrSessionNotFound
			}
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		payload = data
	}

	var session domain.WizardSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *wizardRepository) Delete(ctx context.Context, id string) error {
	if r.client == nil {
		r.mu.Lock()
		delete(r.fallback, id)
		r.mu.Unlock()
		return nil
	}
	return r.client.Del(ctx, keyPrefix+id).Err()
}
