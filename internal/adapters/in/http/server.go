// Package http exposes the delivery worker operations over HTTP with echo.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"fooddelivery/api"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/worker"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListWorkerOrdersHandler is the query side used by GET /delivery/orders.
type ListWorkerOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListWorkerOrdersQuery) ([]queries.WorkerOrder, error)
}

// UpdateOrderStatusHandler is the command side used by PATCH /delivery/orders/:id/status.
type UpdateOrderStatusHandler interface {
	Handle(ctx context.Context, command commands.UpdateOrderStatusCommand) (*order.Order, error)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	listWorkerOrdersHandler  ListWorkerOrdersHandler
	updateOrderStatusHandler UpdateOrderStatusHandler
	logger                   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	listWorkerOrdersHandler ListWorkerOrdersHandler,
	updateOrderStatusHandler UpdateOrderStatusHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		listWorkerOrdersHandler:  listWorkerOrdersHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		logger:                   logger.With("component", "http"),
	}
}

// Register mounts the routes on e. Everything under /api/v1/delivery needs a
// bearer token with role "delivery" and must match the api/openapi.yml contract.
func (s *Server) Register(e *echo.Echo, jwtSecret string) error {
	doc, err := api.Load()
	if err != nil {
		return err
	}
	validate, err := ValidateRequests(doc)
	if err != nil {
		return err
	}

	e.GET("/health", s.GetHealth)

	delivery := e.Group("/api/v1/delivery", Authenticate(jwtSecret), RequireRole(worker.Role), validate)
	delivery.GET("/orders", s.ListDeliveryOrders)
	delivery.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	return nil
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ListDeliveryOrders handles GET /api/v1/delivery/orders - orders visible to the caller.
func (s *Server) ListDeliveryOrders(ctx echo.Context) error {
	orders, err := s.listWorkerOrdersHandler.Handle(ctx.Request().Context(), queries.NewListWorkerOrdersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]WorkerOrder, len(orders))
	for i, o := range orders {
		response[i] = workerOrderFromQuery(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles PATCH /api/v1/delivery/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	var body UpdateOrderStatusRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(ctx.Param("id"), body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}

// fail maps use case errors to status codes. Store errors keep their message,
// including rows that fail domain validation on the way out of the store.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
	}
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrStoredRecordIsInvalid):
		return http.StatusInternalServerError
	case errors.Is(err, ports.ErrUserNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, commands.ErrStatusUpdateRejected):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
