package services

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"storefront/models"
	aws_pkg "storefront/pkg/aws"

	"go.uber.org/zap"
)

// OrderCreator is the slice of the backend client checkout needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, token string, req *models.CreateOrderRequest) (*models.Order, error)
}

// EventProducer publishes checkout events to the message bus.
type EventProducer interface {
	SendCheckoutEvent(event models.CheckoutEvent) error
}

// CheckoutService turns the session cart into a backend order. Payment
// capture, inventory and order state transitions are all upstream concerns.
type CheckoutService interface {
	Checkout(ctx context.Context, sessionID string, req *models.CheckoutRequest) (*models.Order, *ServiceError)
}

type checkoutServiceImpl struct {
	sessions    *SessionManager
	backend     OrderCreator
	producer    EventProducer
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	logger      *zap.Logger
}

func NewCheckoutService(
	sessions *SessionManager,
	backend OrderCreator,
	producer EventProducer,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		sessions:    sessions,
		backend:     backend,
		producer:    producer,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		logger:      logger,
	}
}

// Checkout requires an authenticated session and a non-empty cart. The
// backend createOrder call is the commit point; the checkout event and the
// order notification are published best-effort afterwards, then the cart is
// cleared.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, sessionID string, req *models.CheckoutRequest) (*models.Order, *ServiceError) {
	auth := s.sessions.Auth(ctx, sessionID)
	if !auth.IsAuthenticated() {
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "not authenticated"}
	}

	cart := s.sessions.Cart(ctx, sessionID)
	items := cart.Items()
	if len(items) == 0 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "cart is empty"}
	}

	orderReq := &models.CreateOrderRequest{
		Items:           orderItems(items),
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}

	order, err := s.backend.CreateOrder(ctx, auth.Token(), orderReq)
	if err != nil {
		s.logger.Error("Backend createOrder failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusBadGateway, Message: "failed to create order"}
	}

	user := auth.User()

	if s.producer != nil {
		event := models.CheckoutEvent{
			Event:     "checkout.requested",
			SessionID: sessionID,
			UserID:    user.ID,
			Items:     items,
			Timestamp: time.Now(),
		}
		if err := s.producer.SendCheckoutEvent(event); err != nil {
			s.logger.Warn("Failed to publish checkout event", zap.Error(err))
		}
	}

	if s.snsClient != nil && s.snsTopicArn != "" {
		placed := models.OrderPlacedEvent{
			EventType: "order.placed",
			OrderID:   order.ID,
			UserID:    user.ID,
			Total:     order.Total,
			Timestamp: time.Now(),
		}
		payload, _ := json.Marshal(placed)
		if err := s.snsClient.Publish(ctx, s.snsTopicArn, payload); err != nil {
			s.logger.Warn("Failed to publish order notification", zap.Error(err))
		}
	}

	cart.Clear()

	s.logger.Info("Checkout completed",
		zap.String("order_id", order.ID),
		zap.String("user_id", user.ID),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

func orderItems(items []models.CartItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Color:     it.Color,
			Size:      it.Size,
		})
	}
	return out
}
