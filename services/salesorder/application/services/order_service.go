package services

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/ghuser/stocktrack/services/salesorder/infrastructure/upstream"
)

// OrderService fronts the upstream sales-order system. It owns no state; the
// session travels with each call.
type OrderService struct {
	client *upstream.Client
}

// NewOrderService returns an OrderService backed by the given upstream client.
func NewOrderService(client *upstream.Client) *OrderService {
	return &OrderService{client: client}
}

// Login authenticates and returns the upstream session.
func (s *OrderService) Login(ctx context.Context, loginID, password string) (upstream.Session, error) {
	return s.client.Login(ctx, loginID, password)
}

// Fetch proxies an order query. The upstream body passes through verbatim.
func (s *OrderService) Fetch(ctx context.Context, sessionID string, query url.Values) (json.RawMessage, error) {
	return s.client.FetchOrders(ctx, sessionID, query)
}
