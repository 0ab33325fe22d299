package session

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/loyalty-portal/internal/cache"
	"github.com/your-org/loyalty-portal/internal/config"
	"github.com/your-org/loyalty-portal/internal/loyalty"
)

func testConfig(env string, autoLogin bool) *config.Config {
	return &config.Config{
		App: config.AppConfig{Environment: env},
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-with-enough-length!",
			AccessTokenExpiry: time.Hour,
		},
		Auth: config.AuthConfig{
			DevAutoLogin:      autoLogin,
			DevManagerID:      "am-001",
			DevManagerEmail:   "john.doe@acme.example",
			DevManagerFirst:   "John",
			DevManagerLast:    "Doe",
			DevCompanyID:      "comp-acme",
			DevCompanyName:    "ACME Corporation",
			DevLoyaltyAccount: "loy-acme-001",
			DevCompanyTier:    "GOLD",
			SessionExpiry:     time.Hour,
		},
	}
}

func newTestManager(t *testing.T, cfg *config.Config) *Manager {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewManager(cache.NewMemoryStore(), cfg, logger)
}

func TestLogin_AndResolve(t *testing.T) {
	m := newTestManager(t, testConfig("development", false))
	ctx := context.Background()

	user := loyalty.AccountManager{ID: "am-7", FirstName: "Ada", LastName: "Park", Email: "ada@corp.example"}
	company := loyalty.Company{ID: "comp-7", Name: "Corp", LoyaltyAccountID: "loy-7"}

	sess, token, err := m.Login(ctx, user, company)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "am-7", sess.User.ID)

	resolved, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, resolved.ID)
	assert.Equal(t, "comp-7", resolved.Company.ID)
	assert.True(t, resolved.IsAuthenticated)
}

func TestLogin_RequiresIdentity(t *testing.T) {
	m := newTestManager(t, testConfig("development", false))

	_, _, err := m.Login(context.Background(), loyalty.AccountManager{}, loyalty.Company{ID: "c"})
	require.Error(t, err)
	assert.True(t, loyalty.IsValidation(err))
}

func TestResolve_RejectsGarbageToken(t *testing.T) {
	m := newTestManager(t, testConfig("development", false))

	_, err := m.Resolve(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_AfterLogout(t *testing.T) {
	m := newTestManager(t, testConfig("development", false))
	ctx := context.Background()

	user := loyalty.AccountManager{ID: "am-7", Email: "ada@corp.example"}
	sess, token, err := m.Login(ctx, user, loyalty.Company{ID: "comp-7"})
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx, sess.ID))

	// the token still verifies, but its session record is gone
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDevLogin_UsesConfiguredIdentity(t *testing.T) {
	m := newTestManager(t, testConfig("development", true))

	sess, token, err := m.DevLogin(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "am-001", sess.User.ID)
	assert.Equal(t, "ACME Corporation", sess.Company.Name)
	assert.Equal(t, "loy-acme-001", sess.Company.LoyaltyAccountID)
}

func TestDevLogin_Refusals(t *testing.T) {
	t.Run("flag disabled", func(t *testing.T) {
		m := newTestManager(t, testConfig("development", false))
		_, _, err := m.DevLogin(context.Background())
		require.Error(t, err)
		assert.True(t, loyalty.IsAuthorization(err))
	})

	t.Run("production environment", func(t *testing.T) {
		m := newTestManager(t, testConfig("production", true))
		_, _, err := m.DevLogin(context.Background())
		require.Error(t, err)
		assert.True(t, loyalty.IsAuthorization(err))
	})
}
