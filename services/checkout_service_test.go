package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"storefront/models"
	"storefront/repository"
	"storefront/services"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// --- Mock backend ---

type mockBackend struct {
	order     *models.Order
	createErr error
	received  *models.CreateOrderRequest
}

func (m *mockBackend) CreateOrder(_ context.Context, _ string, req *models.CreateOrderRequest) (*models.Order, error) {
	m.received = req
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.order, nil
}

// --- Mock event producer ---

type mockProducer struct {
	events []models.CheckoutEvent
	err    error
}

func (m *mockProducer) SendCheckoutEvent(event models.CheckoutEvent) error {
	m.events = append(m.events, event)
	return m.err
}

// --- Mock SNS publisher ---

type mockSNS struct {
	publishedArn string
	publishedMsg []byte
	err          error
}

func (m *mockSNS) Publish(_ context.Context, topicArn string, message []byte) error {
	m.publishedArn = topicArn
	m.publishedMsg = append([]byte(nil), message...)
	return m.err
}

// --- Helpers ---

const testTopicArn = "arn:aws:sns:us-east-1:000000000000:order-events"

func newCheckout(m *services.SessionManager, backend *mockBackend, producer *mockProducer, sns *mockSNS) services.CheckoutService {
	logger, _ := zap.NewDevelopment()
	return services.NewCheckoutService(m, backend, producer, sns, testTopicArn, logger)
}

func loggedInManagerWithCart(t *testing.T) *services.SessionManager {
	t.Helper()
	m := newManager(repository.NewMemoryStateStore(), okProvider(), nil)
	ctx := context.Background()
	_, _, svcErr := m.Login(ctx, "s1", "a@b.c", "pw")
	assert.Nil(t, svcErr)
	addShirt(m.Cart(ctx, "s1"))
	addShirt(m.Cart(ctx, "s1"))
	return m
}

func checkoutRequest() *models.CheckoutRequest {
	return &models.CheckoutRequest{ShippingAddress: "1 Main St", PaymentMethod: "card"}
}

// --- Tests ---

func TestCheckout_RequiresAuthentication(t *testing.T) {
	m := newManager(repository.NewMemoryStateStore(), okProvider(), nil)
	svc := newCheckout(m, &mockBackend{}, &mockProducer{}, &mockSNS{})

	_, svcErr := svc.Checkout(context.Background(), "s1", checkoutRequest())
	assert.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)
}

func TestCheckout_RejectsEmptyCart(t *testing.T) {
	m := newManager(repository.NewMemoryStateStore(), okProvider(), nil)
	ctx := context.Background()
	_, _, svcErr := m.Login(ctx, "s1", "a@b.c", "pw")
	assert.Nil(t, svcErr)

	svc := newCheckout(m, &mockBackend{}, &mockProducer{}, &mockSNS{})
	_, chkErr := svc.Checkout(ctx, "s1", checkoutRequest())
	assert.NotNil(t, chkErr)
	assert.Equal(t, 400, chkErr.StatusCode)
}

func TestCheckout_CreatesOrderAndClearsCart(t *testing.T) {
	m := loggedInManagerWithCart(t)
	backend := &mockBackend{order: &models.Order{ID: "o1", Total: 20, Status: "pending"}}
	producer := &mockProducer{}
	sns := &mockSNS{}
	svc := newCheckout(m, backend, producer, sns)
	ctx := context.Background()

	order, svcErr := svc.Checkout(ctx, "s1", checkoutRequest())
	assert.Nil(t, svcErr)
	assert.Equal(t, "o1", order.ID)

	// order request carries the merged cart line
	assert.Len(t, backend.received.Items, 1)
	assert.Equal(t, 2, backend.received.Items[0].Quantity)
	assert.Equal(t, "1 Main St", backend.received.ShippingAddress)

	// checkout event published, keyed to the session
	assert.Len(t, producer.events, 1)
	assert.Equal(t, "checkout.requested", producer.events[0].Event)
	assert.Equal(t, "s1", producer.events[0].SessionID)

	// order notification published as valid JSON
	assert.Equal(t, testTopicArn, sns.publishedArn)
	var placed models.OrderPlacedEvent
	assert.NoError(t, json.Unmarshal(sns.publishedMsg, &placed))
	assert.Equal(t, "order.placed", placed.EventType)
	assert.Equal(t, "o1", placed.OrderID)

	// cart cleared after the order is accepted
	assert.Equal(t, 0, m.Cart(ctx, "s1").Len())
}

func TestCheckout_BackendFailureKeepsCart(t *testing.T) {
	m := loggedInManagerWithCart(t)
	backend := &mockBackend{createErr: errors.New("upstream down")}
	svc := newCheckout(m, backend, &mockProducer{}, &mockSNS{})
	ctx := context.Background()

	_, svcErr := svc.Checkout(ctx, "s1", checkoutRequest())
	assert.NotNil(t, svcErr)
	assert.Equal(t, 502, svcErr.StatusCode)

	// the cart must survive a failed checkout
	assert.Equal(t, 1, m.Cart(ctx, "s1").Len())
}

func TestCheckout_EventFailuresAreNonFatal(t *testing.T) {
	m := loggedInManagerWithCart(t)
	backend := &mockBackend{order: &models.Order{ID: "o1", Total: 20}}
	producer := &mockProducer{err: errors.New("broker down")}
	sns := &mockSNS{err: errors.New("sns down")}
	svc := newCheckout(m, backend, producer, sns)
	ctx := context.Background()

	order, svcErr := svc.Checkout(ctx, "s1", checkoutRequest())
	assert.Nil(t, svcErr)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, 0, m.Cart(ctx, "s1").Len())
}
