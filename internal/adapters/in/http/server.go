// Package http exposes the tracking surface of the fulfillment engine over
// echo. It coordinates between HTTP handlers and application use cases; all
// business rules live in the command and query handlers.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// userIDHeader carries the authenticated user's identifier, set by the
// platform's auth middleware in front of this service.
const userIDHeader = "X-User-ID"

// ErrorResponse is the JSON error body returned by all tracking endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TrackingViewResponse is the JSON shape of the tracking view.
type TrackingViewResponse struct {
	OrderID                 string                  `json:"orderId"`
	TrackingReference       *string                 `json:"trackingReference"`
	Status                  string                  `json:"status"`
	TrackingLastCheckedAt   *time.Time              `json:"trackingLastCheckedAt"`
	TrackingStatusUpdatedAt *time.Time              `json:"trackingStatusUpdatedAt"`
	TrackingEvents          []TrackingEventResponse `json:"trackingEvents"`
	IsActive                bool                    `json:"isActive"`
}

// TrackingEventResponse is one audit-trail entry of the tracking view.
type TrackingEventResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

// Server handles the tracking HTTP routes.
type Server struct {
	refreshHandler     commands.RefreshOrderTrackingCommandHandler
	getTrackingHandler queries.GetOrderTrackingQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	refreshHandler commands.RefreshOrderTrackingCommandHandler,
	getTrackingHandler queries.GetOrderTrackingQueryHandler,
) *Server {
	return &Server{
		refreshHandler:     refreshHandler,
		getTrackingHandler: getTrackingHandler,
	}
}

// RegisterRoutes attaches the tracking routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/tracking/orders/:orderId", s.GetOrderTracking)
	e.POST("/tracking/orders/:orderId/refresh", s.RefreshOrderTracking)
	e.GET("/admin/tracking/orders/:orderId", s.GetOrderTrackingAdmin)
}

// GetOrderTracking handles GET /tracking/orders/:orderId - returns the
// current tracking view without triggering reconciliation. Ownership is
// enforced when the auth middleware supplies a user identifier.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	orderID, userID, err := s.parseIdentifiers(ctx, true)
	if err != nil {
		return badRequest(ctx, err)
	}

	return s.renderTrackingView(ctx, orderID, userID)
}

// GetOrderTrackingAdmin handles GET /admin/tracking/orders/:orderId - same
// view without an ownership check. Elevated authorization is enforced by the
// routing layer in front of this service.
func (s *Server) GetOrderTrackingAdmin(ctx echo.Context) error {
	orderID, _, err := s.parseIdentifiers(ctx, false)
	if err != nil {
		return badRequest(ctx, err)
	}

	return s.renderTrackingView(ctx, orderID, nil)
}

// RefreshOrderTracking handles POST /tracking/orders/:orderId/refresh -
// reconciles the order against the carrier synchronously and returns the
// updated tracking view.
func (s *Server) RefreshOrderTracking(ctx echo.Context) error {
	orderID, userID, err := s.parseIdentifiers(ctx, true)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRefreshOrderTrackingCommand(orderID, userID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.refreshHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		case errors.Is(err, ports.ErrCarrierUnavailable):
			return ctx.JSON(http.StatusBadGateway, ErrorResponse{
				Code:    http.StatusBadGateway,
				Message: "Carrier is unavailable, try again later",
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
				Code:    http.StatusInternalServerError,
				Message: "Failed to refresh tracking",
			})
		}
	}

	return s.renderTrackingView(ctx, orderID, userID)
}

// parseIdentifiers extracts the order id from the path and, when
// withOwnership is set, the optional requesting user from the auth header.
func (s *Server) parseIdentifiers(ctx echo.Context, withOwnership bool) (kernel.UUID, *kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return kernel.UUID{}, nil, err
	}

	if !withOwnership {
		return orderID, nil, nil
	}

	header := ctx.Request().Header.Get(userIDHeader)
	if header == "" {
		return orderID, nil, nil
	}

	userID, err := kernel.UUIDFromString(header)
	if err != nil {
		return kernel.UUID{}, nil, err
	}

	return orderID, &userID, nil
}

// renderTrackingView runs the tracking query and writes the JSON view.
func (s *Server) renderTrackingView(ctx echo.Context, orderID kernel.UUID, userID *kernel.UUID) error {
	query, err := queries.NewGetOrderTrackingQuery(orderID, userID)
	if err != nil {
		return badRequest(ctx, err)
	}

	view, err := s.getTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve tracking view",
		})
	}

	events := make([]TrackingEventResponse, 0, len(view.TrackingEvents))
	for _, event := range view.TrackingEvents {
		events = append(events, TrackingEventResponse{
			Status:    event.Status,
			Timestamp: event.Timestamp,
			Note:      event.Note,
		})
	}

	return ctx.JSON(http.StatusOK, TrackingViewResponse{
		OrderID:                 view.OrderID.String(),
		TrackingReference:       view.TrackingReference,
		Status:                  view.Status,
		TrackingLastCheckedAt:   view.TrackingLastCheckedAt,
		TrackingStatusUpdatedAt: view.TrackingStatusUpdatedAt,
		TrackingEvents:          events,
		IsActive:                view.IsActive,
	})
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: "Invalid request: " + err.Error(),
	})
}
