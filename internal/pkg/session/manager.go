// internal/pkg/session/manager.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/your-org/rental-backend/internal/config"
	"github.com/your-org/rental-backend/internal/infrastructure/database/redis"
)

// ErrNotFound is returned when a session ID has no backing entry, either
// because it expired or was destroyed on logout.
var ErrNotFound = errors.New("session not found")

const keyPrefix = "session:"

// Session is the server-side state behind an opaque session cookie. Only the
// user ID is authoritative; everything else is re-read from the database per
// request.
type Session struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	CSRFToken string    `json:"csrf_token"`
	CreatedAt time.Time `json:"created_at"`
}

// Manager stores sessions in Redis with a TTL matching the cookie lifetime.
type Manager struct {
	redisClient *redis.Client
	config      *config.Config
}

// NewManager creates a new session manager
func NewManager(redisClient *redis.Client, cfg *config.Config) *Manager {
	return &Manager{
		redisClient: redisClient,
		config:      cfg,
	}
}

// Create establishes a new session for the given user and returns it. The
// session carries its own CSRF token for the double-submit check.
func (m *Manager) Create(ctx context.Context, userID uint) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CSRFToken: uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	if err := m.redisClient.SetJSON(ctx, keyPrefix+sess.ID, sess, m.config.Session.TTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return sess, nil
}

// Get loads the session behind an opaque ID and refreshes its TTL.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, ErrNotFound
	}

	var sess Session
	err := m.redisClient.GetJSON(ctx, keyPrefix+sessionID, &sess)
	if errors.Is(err, goredis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	// Sliding expiration: active sessions stay alive.
	m.redisClient.Expire(ctx, keyPrefix+sessionID, m.config.Session.TTL)

	return &sess, nil
}

// Destroy removes a session, ending it server-side regardless of any cookie
// the client still holds.
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.redisClient.Del(ctx, keyPrefix+sessionID)
}

// NewCSRFToken mints a token for the anonymous CSRF cookie endpoint.
func NewCSRFToken() string {
	return uuid.NewString()
}
