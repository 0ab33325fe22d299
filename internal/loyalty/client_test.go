package loyalty

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/loyalty-portal/internal/config"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{
		Backend: config.BackendConfig{
			BaseURL:           serverURL,
			APIToken:          "test-token",
			Timeout:           5 * time.Second,
			RetryReads:        true,
			RequestsPerSecond: 100,
			RequestBurst:      100,
		},
	}
	client, err := NewClient(cfg, logger)
	require.NoError(t, err)
	return client
}

func TestClient_AttachesAuthHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"id":"p1","name":"Mug"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Products.Get(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_RetriesReadOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"content":[],"totalElements":0,"totalPages":0}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	page, err := client.Products.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Empty(t, page.Content)
}

func TestClient_DoesNotRetryReadOn4xx(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"product not found"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Products.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindServer, apiErr.Kind)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "product not found", apiErr.Message)
}

func TestClient_NeverRetriesMutations(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"inventory reservation failed"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Redemption.CreateOrder(context.Background(), &CreateOrderRequest{
		CompanyID:        "comp-1",
		AccountManagerID: "am-001",
		Items:            []OrderItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "inventory reservation failed", apiErr.Message)
}

func TestClient_MapsUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Redemption.CheckBalance(context.Background(), "comp-1")
	require.Error(t, err)
	assert.True(t, IsAuthorization(err))
}

func TestClient_NetworkErrorKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := newTestClient(t, server.URL)
	_, err := client.Products.Categories(context.Background())
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, apiErr.Kind)
}

func TestCreateOrder_ValidatesLocally(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0")

	_, err := client.Redemption.CreateOrder(context.Background(), &CreateOrderRequest{})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
