package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/loyalty-portal/internal/cache"
	"github.com/your-org/loyalty-portal/internal/config"
	"github.com/your-org/loyalty-portal/internal/domain/cart"
	"github.com/your-org/loyalty-portal/internal/domain/session"
	"github.com/your-org/loyalty-portal/internal/domain/ui"
	"github.com/your-org/loyalty-portal/internal/interfaces/http/middleware"
	"github.com/your-org/loyalty-portal/internal/loyalty"
)

type responderFixture struct {
	sessions  *session.Manager
	carts     *cart.Store
	feed      *ui.Feed
	responder *Responder
}

func newResponderFixture(t *testing.T) *responderFixture {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{Environment: "test"},
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-with-enough-length!",
			AccessTokenExpiry: time.Hour,
		},
		Auth: config.AuthConfig{SessionExpiry: time.Hour},
	}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	sessions := session.NewManager(cache.NewMemoryStore(), cfg, logger)
	carts := cart.NewStore()
	feed := ui.NewFeed(10)
	return &responderFixture{
		sessions:  sessions,
		carts:     carts,
		feed:      feed,
		responder: NewResponder(sessions, carts, feed, logger),
	}
}

func (f *responderFixture) login(t *testing.T) (*session.Session, string) {
	t.Helper()
	user := loyalty.AccountManager{ID: "am-7", FirstName: "Ada", LastName: "Park", Email: "ada@corp.example"}
	company := loyalty.Company{ID: "comp-9", Name: "Globex"}
	sess, token, err := f.sessions.Login(context.Background(), user, company)
	require.NoError(t, err)
	return sess, token
}

// protectedRouter mounts a route behind the session middleware whose
// handler reports the given upstream error through the responder.
func (f *responderFixture) protectedRouter(upstreamErr error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/orders", middleware.RequireSession(f.sessions), func(c *gin.Context) {
		f.responder.Error(c, upstreamErr)
	})
	return router
}

func doGet(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestResponderError_UpstreamRejectionTearsDownSession(t *testing.T) {
	f := newResponderFixture(t)
	sess, token := f.login(t)

	f.carts.Get(sess.ID).AddItem(loyalty.Product{ID: "prod-1", Name: "Mug", PointsCost: 120, IsActive: true}, 2)
	f.feed.Success(sess.ID, "Added to cart", "Mug added to your cart")

	router := f.protectedRouter(loyalty.NewAuthorizationError("token expired"))

	rec := doGet(router, "/orders", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The stored session is gone, so the same bearer token no longer
	// passes the middleware.
	_, err := f.sessions.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, session.ErrNotFound)

	rec = doGet(router, "/orders", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired session")

	assert.Empty(t, f.carts.Get(sess.ID).Snapshot().Lines)
	assert.Empty(t, f.feed.List(sess.ID))
}

func TestResponderError_NonAuthorizationKeepsSession(t *testing.T) {
	f := newResponderFixture(t)
	sess, token := f.login(t)

	f.carts.Get(sess.ID).AddItem(loyalty.Product{ID: "prod-1", Name: "Mug", PointsCost: 120, IsActive: true}, 1)

	router := f.protectedRouter(loyalty.NewNetworkError(errors.New("connection refused")))

	rec := doGet(router, "/orders", token)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	resolved, err := f.sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, resolved.ID)
	assert.Len(t, f.carts.Get(sess.ID).Snapshot().Lines, 1)
}
