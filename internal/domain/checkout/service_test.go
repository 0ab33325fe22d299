package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/your-org/loyalty-portal/internal/cache"
	"github.com/your-org/loyalty-portal/internal/config"
	"github.com/your-org/loyalty-portal/internal/domain/cart"
	"github.com/your-org/loyalty-portal/internal/domain/session"
	"github.com/your-org/loyalty-portal/internal/loyalty"
)

type mockRedemption struct {
	mock.Mock
}

func (m *mockRedemption) CheckBalance(ctx context.Context, companyID string) (*loyalty.Balance, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loyalty.Balance), args.Error(1)
}

func (m *mockRedemption) CreateOrder(ctx context.Context, req *loyalty.CreateOrderRequest) (*loyalty.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loyalty.Order), args.Error(1)
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(sessionID, title, message string) {
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) Error(sessionID, title, message string) {
	n.errors = append(n.errors, message)
}

func newTestService(t *testing.T, redemption RedemptionAPI) (*Service, *cart.Store, *recordingNotifier) {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{
		Cache: config.CacheConfig{
			BalanceTTL: 30 * time.Second,
		},
	}
	carts := cart.NewStore()
	notifier := &recordingNotifier{}
	svc := NewService(redemption, carts, cache.New(cache.NewMemoryStore(), logger), notifier, cfg, logger)
	return svc, carts, notifier
}

func testSession() *session.Session {
	return &session.Session{
		ID:              "sess-1",
		User:            loyalty.AccountManager{ID: "am-001", FirstName: "John", LastName: "Doe"},
		Company:         loyalty.Company{ID: "comp-1", Name: "ACME Corporation"},
		IsAuthenticated: true,
	}
}

func physicalProduct(points int) loyalty.Product {
	return loyalty.Product{
		ID:          "prod-1",
		Name:        "Branded Jacket",
		PointsCost:  points,
		ProductType: loyalty.ProductTypePhysical,
	}
}

func virtualProduct(points int) loyalty.Product {
	return loyalty.Product{
		ID:          "prod-2",
		Name:        "Gift Card",
		PointsCost:  points,
		ProductType: loyalty.ProductTypeVirtual,
	}
}

func TestConfirm_RequiresAuthentication(t *testing.T) {
	svc, _, _ := newTestService(t, &mockRedemption{})

	_, err := svc.Confirm(context.Background(), nil, ConfirmRequest{})
	require.Error(t, err)
	assert.True(t, loyalty.IsValidation(err))

	_, err = svc.Confirm(context.Background(), &session.Session{ID: "s"}, ConfirmRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log in")
}

func TestConfirm_EmptyCart(t *testing.T) {
	svc, _, _ := newTestService(t, &mockRedemption{})

	_, err := svc.Confirm(context.Background(), testSession(), ConfirmRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestConfirm_PhysicalRequiresShippingAddress(t *testing.T) {
	redemption := &mockRedemption{}
	svc, carts, _ := newTestService(t, redemption)

	sess := testSession()
	carts.Get(sess.ID).AddItem(physicalProduct(100), 1)

	_, err := svc.Confirm(context.Background(), sess, ConfirmRequest{ShippingAddress: "   "})
	require.Error(t, err)
	assert.True(t, loyalty.IsValidation(err))
	assert.Contains(t, err.Error(), "Shipping address is required")
	redemption.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestConfirm_VirtualOnlySkipsShippingAddress(t *testing.T) {
	redemption := &mockRedemption{}
	redemption.On("CheckBalance", mock.Anything, "comp-1").
		Return(&loyalty.Balance{AccountID: "comp-1", Balance: 1000, AvailableBalance: 1000}, nil)
	redemption.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req *loyalty.CreateOrderRequest) bool {
		return req.ShippingAddress == ""
	})).Return(&loyalty.Order{ID: "ord-1", OrderNumber: "ORD-001"}, nil)

	svc, carts, _ := newTestService(t, redemption)
	sess := testSession()
	carts.Get(sess.ID).AddItem(virtualProduct(200), 2)

	order, err := svc.Confirm(context.Background(), sess, ConfirmRequest{})
	require.NoError(t, err)
	assert.Equal(t, "ORD-001", order.OrderNumber)
	redemption.AssertExpectations(t)
}

func TestConfirm_InsufficientBalanceReportsExactShortfall(t *testing.T) {
	redemption := &mockRedemption{}
	redemption.On("CheckBalance", mock.Anything, "comp-1").
		Return(&loyalty.Balance{AccountID: "comp-1", Balance: 300, AvailableBalance: 300}, nil)

	svc, carts, notifier := newTestService(t, redemption)
	sess := testSession()
	carts.Get(sess.ID).AddItem(virtualProduct(200), 2) // 400 points against 300 available

	_, err := svc.Confirm(context.Background(), sess, ConfirmRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "You need 100 more points")
	require.Len(t, notifier.errors, 1)
	assert.Contains(t, notifier.errors[0], "100 more points")

	// the cart survives the failed attempt
	assert.False(t, carts.Get(sess.ID).Snapshot().IsEmpty())
	redemption.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestConfirm_BackendFailureLeavesCartUntouched(t *testing.T) {
	redemption := &mockRedemption{}
	redemption.On("CheckBalance", mock.Anything, "comp-1").
		Return(&loyalty.Balance{AccountID: "comp-1", Balance: 1000, AvailableBalance: 1000}, nil)
	redemption.On("CreateOrder", mock.Anything, mock.Anything).
		Return(nil, loyalty.NewServerError(500, "inventory reservation failed"))

	svc, carts, notifier := newTestService(t, redemption)
	sess := testSession()
	carts.Get(sess.ID).AddItem(virtualProduct(100), 1)

	_, err := svc.Confirm(context.Background(), sess, ConfirmRequest{})
	require.Error(t, err)

	snapshot := carts.Get(sess.ID).Snapshot()
	assert.False(t, snapshot.IsEmpty())
	assert.Equal(t, 100, snapshot.Totals.TotalPoints)
	require.Len(t, notifier.errors, 1)
}

func TestConfirm_SuccessClearsCartAndNotifies(t *testing.T) {
	redemption := &mockRedemption{}
	redemption.On("CheckBalance", mock.Anything, "comp-1").
		Return(&loyalty.Balance{AccountID: "comp-1", Balance: 5000, AvailableBalance: 5000}, nil)
	redemption.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req *loyalty.CreateOrderRequest) bool {
		return req.CompanyID == "comp-1" &&
			req.AccountManagerID == "am-001" &&
			len(req.Items) == 2 &&
			req.ShippingAddress == "1 Main St"
	})).Return(&loyalty.Order{ID: "ord-9", OrderNumber: "ORD-009"}, nil)

	svc, carts, notifier := newTestService(t, redemption)
	sess := testSession()
	carts.Get(sess.ID).AddItem(physicalProduct(150), 1)
	carts.Get(sess.ID).AddItem(virtualProduct(50), 3)

	order, err := svc.Confirm(context.Background(), sess, ConfirmRequest{
		ShippingAddress:     " 1 Main St ",
		SpecialInstructions: "leave at reception",
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-009", order.OrderNumber)

	assert.True(t, carts.Get(sess.ID).Snapshot().IsEmpty())
	require.Len(t, notifier.successes, 1)
	assert.Contains(t, notifier.successes[0], "ORD-009")
	redemption.AssertExpectations(t)
}

func TestConfirm_SufficiencyUsesSubmittedSnapshot(t *testing.T) {
	redemption := &mockRedemption{}
	svc, carts, _ := newTestService(t, redemption)
	sess := testSession()

	// 300 available covers exactly the one line captured in the snapshot
	carts.Get(sess.ID).AddItem(virtualProduct(300), 1)

	redemption.On("CheckBalance", mock.Anything, "comp-1").
		Run(func(args mock.Arguments) {
			// another request grows the cart while the balance read is in flight
			carts.Get(sess.ID).AddItem(virtualProduct(500), 1)
		}).
		Return(&loyalty.Balance{AccountID: "comp-1", Balance: 300, AvailableBalance: 300}, nil)
	redemption.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req *loyalty.CreateOrderRequest) bool {
		return len(req.Items) == 1 && req.Items[0].Quantity == 1
	})).Return(&loyalty.Order{ID: "ord-5", OrderNumber: "ORD-005"}, nil)

	order, err := svc.Confirm(context.Background(), sess, ConfirmRequest{})
	require.NoError(t, err)
	assert.Equal(t, "ORD-005", order.OrderNumber)
	redemption.AssertExpectations(t)
}

func TestCheckBalance_Sufficiency(t *testing.T) {
	tests := []struct {
		name       string
		available  int
		total      int
		sufficient bool
		shortfall  int
	}{
		{"exact balance is sufficient", 400, 400, true, 0},
		{"surplus", 500, 400, true, 0},
		{"shortfall is exact", 250, 400, false, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redemption := &mockRedemption{}
			redemption.On("CheckBalance", mock.Anything, "comp-1").
				Return(&loyalty.Balance{AccountID: "comp-1", Balance: tt.available, AvailableBalance: tt.available}, nil)

			svc, carts, _ := newTestService(t, redemption)
			sess := testSession()
			carts.Get(sess.ID).AddItem(virtualProduct(tt.total), 1)

			check, err := svc.CheckBalance(context.Background(), sess)
			require.NoError(t, err)
			assert.Equal(t, tt.sufficient, check.Sufficient)
			assert.Equal(t, tt.shortfall, check.Shortfall)
			assert.Equal(t, tt.total, check.OrderTotal)
		})
	}
}
