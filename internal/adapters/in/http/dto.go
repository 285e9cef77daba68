package http

import (
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Error is the JSON body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// UpdateOrderStatusRequest is the body of PATCH /api/v1/delivery/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// Order is an order row as returned after a status change.
type Order struct {
	ID            uuid.UUID       `json:"id"`
	Status        string          `json:"status"`
	Total         decimal.Decimal `json:"total"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	DeliveryID    *uuid.UUID      `json:"delivery_id"`
}

// WorkerOrder is an order enriched for the delivery worker's list.
type WorkerOrder struct {
	Order
	Items     []OrderItem `json:"order_items"`
	Customer  *Customer   `json:"customer"`
	Latitude  *float64    `json:"latitude"`
	Longitude *float64    `json:"longitude"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	Title        string          `json:"title"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
}

// Customer is the contact card attached to an order.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	AvatarURL string    `json:"avatar_url"`
}

func orderFromDomain(o *order.Order) Order {
	resp := Order{
		ID:            o.ID().Bytes(),
		Status:        o.Status().String(),
		Total:         o.Total(),
		Notes:         o.Notes(),
		PaymentMethod: o.PaymentMethod(),
		CreatedAt:     o.CreatedAt(),
		CustomerID:    o.CustomerID().Bytes(),
		Address:       o.Address(),
		City:          o.City(),
	}
	if id := o.DeliveryID(); id != nil {
		raw := id.Bytes()
		resp.DeliveryID = &raw
	}
	return resp
}

func workerOrderFromQuery(wo queries.WorkerOrder) WorkerOrder {
	resp := WorkerOrder{
		Order: Order{
			ID:            wo.ID.Bytes(),
			Status:        wo.Status.String(),
			Total:         wo.Total,
			Notes:         wo.Notes,
			PaymentMethod: wo.PaymentMethod,
			CreatedAt:     wo.CreatedAt,
			CustomerID:    wo.CustomerID.Bytes(),
			Address:       wo.Address,
			City:          wo.City,
		},
		Items: make([]OrderItem, 0, len(wo.Items)),
	}
	if wo.DeliveryID != nil {
		raw := wo.DeliveryID.Bytes()
		resp.DeliveryID = &raw
	}

	for _, it := range wo.Items {
		resp.Items = append(resp.Items, OrderItem{
			Title:        it.Title,
			Quantity:     it.Quantity,
			PriceAtOrder: it.PriceAtOrder,
		})
	}

	if wo.Customer != nil {
		resp.Customer = &Customer{
			ID:        wo.Customer.ID.Bytes(),
			Name:      wo.Customer.Name,
			Phone:     wo.Customer.Phone,
			AvatarURL: wo.Customer.AvatarURL,
		}
	}

	if wo.Location != nil {
		lat, lon := wo.Location.Latitude(), wo.Location.Longitude()
		resp.Latitude = &lat
		resp.Longitude = &lon
	}

	return resp
}
