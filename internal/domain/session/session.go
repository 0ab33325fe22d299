// internal/domain/session/session.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/loyalty-portal/internal/config"
	"github.com/your-org/loyalty-portal/internal/loyalty"
	"github.com/your-org/loyalty-portal/internal/pkg/auth"
)

// ErrNotFound is returned when no stored session matches the token
var ErrNotFound = errors.New("session not found")

// Session is the authenticated-operator record. Unlike the cart, it is
// persisted durably and rehydrated across restarts.
type Session struct {
	ID              string                 `json:"id"`
	User            loyalty.AccountManager `json:"user"`
	Company         loyalty.Company        `json:"company"`
	IsAuthenticated bool                   `json:"isAuthenticated"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// Store is the durable backend for session records
type Store interface {
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) error
	Del(ctx context.Context, keys ...string) error
}

// Manager owns the session lifecycle: created at login, cleared at logout,
// rehydrated from the store on later requests.
type Manager struct {
	store  Store
	jwt    *auth.JWTManager
	config *config.Config
	logger *logrus.Logger
}

// NewManager creates a session manager
func NewManager(store Store, cfg *config.Config, logger *logrus.Logger) *Manager {
	return &Manager{
		store:  store,
		jwt:    auth.NewJWTManager(cfg),
		config: cfg,
		logger: logger,
	}
}

// Login creates a session for an account manager and returns its bearer token
func (m *Manager) Login(ctx context.Context, user loyalty.AccountManager, company loyalty.Company) (*Session, string, error) {
	if user.ID == "" || company.ID == "" {
		return nil, "", loyalty.NewValidationError("account manager and company are required")
	}

	sess := &Session{
		ID:              uuid.New().String(),
		User:            user,
		Company:         company,
		IsAuthenticated: true,
		CreatedAt:       time.Now().UTC(),
	}

	if err := m.store.SetJSON(ctx, sessionKey(sess.ID), sess, m.config.Auth.SessionExpiry); err != nil {
		return nil, "", fmt.Errorf("failed to persist session: %w", err)
	}

	token, err := m.jwt.GenerateSessionToken(sess.ID, user.ID, user.Email, company.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	m.logger.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"manager":    user.Email,
		"company":    company.Name,
	}).Info("Session created")

	return sess, token, nil
}

// DevLogin mints a session from the configured development identity.
// It refuses to run unless the auto-login flag is set, and the flag
// itself is rejected by config validation in production.
func (m *Manager) DevLogin(ctx context.Context) (*Session, string, error) {
	if !m.config.Auth.DevAutoLogin || m.config.IsProduction() {
		return nil, "", loyalty.NewAuthorizationError("auto-login is not available")
	}

	a := m.config.Auth
	user := loyalty.AccountManager{
		ID:        a.DevManagerID,
		FirstName: a.DevManagerFirst,
		LastName:  a.DevManagerLast,
		Email:     a.DevManagerEmail,
		Role:      "ACCOUNT_MANAGER",
	}
	company := loyalty.Company{
		ID:               a.DevCompanyID,
		Name:             a.DevCompanyName,
		LoyaltyAccountID: a.DevLoyaltyAccount,
		Tier:             a.DevCompanyTier,
	}

	m.logger.Warn("Development auto-login used")
	return m.Login(ctx, user, company)
}

// Resolve validates a bearer token and rehydrates its session from the store
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := m.jwt.ValidateSessionToken(token)
	if err != nil {
		return nil, ErrNotFound
	}

	var sess Session
	if err := m.store.GetJSON(ctx, sessionKey(claims.SessionID), &sess); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &sess, nil
}

// Logout deletes the stored session record
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := m.store.Del(ctx, sessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	m.logger.WithField("session_id", sessionID).Info("Session cleared")
	return nil
}

func sessionKey(id string) string {
	return "session:" + id
}
