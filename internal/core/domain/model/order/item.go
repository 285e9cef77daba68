package order

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is an order line. PriceAtOrder is the unit price captured at checkout.
type Item struct {
	orderID      kernel.UUID
	quantity     int
	title        string
	priceAtOrder decimal.Decimal
}

// RestoreItem rebuilds an order line from persisted state.
func RestoreItem(orderID kernel.UUID, quantity int, title string, priceAtOrder decimal.Decimal) (Item, error) {
	var quantityErr, priceErr error
	if quantity < 0 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	if priceAtOrder.IsNegative() {
		priceErr = errs.NewValueIsInvalidError("price at order")
	}

	if err := errors.Join(orderID.Validate(), quantityErr, priceErr); err != nil {
		return Item{}, err
	}

	return Item{
		orderID:      orderID,
		quantity:     quantity,
		title:        title,
		priceAtOrder: priceAtOrder,
	}, nil
}

func (i Item) OrderID() kernel.UUID {
	return i.orderID
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) Title() string {
	return i.title
}

func (i Item) PriceAtOrder() decimal.Decimal {
	return i.priceAtOrder
}

// Subtotal is PriceAtOrder times Quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.priceAtOrder.Mul(decimal.NewFromInt(int64(i.quantity)))
}
