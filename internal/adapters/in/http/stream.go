package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"livraison/internal/broadcast"
	"livraison/internal/core/application/usecases/queries"
	"livraison/internal/core/domain/model/kernel"
)

// StreamDelivery handles GET /api/v1/deliveries/:id/events. It streams
// transition events for one delivery over SSE until the client disconnects.
// Visibility follows the read model: an actor who cannot fetch the delivery
// cannot observe it either, and gets the same 404.
func (s *Server) StreamDelivery(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "authentication required")
	}

	deliveryID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid delivery id")
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID, actor.ID, actor.Role)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	if _, err = s.getHandler.Handle(c.Request().Context(), query); err != nil {
		return s.domainError(c, err)
	}

	return s.stream(c, broadcast.ScopeDelivery(deliveryID))
}

// StreamAllDeliveries handles GET /api/v1/deliveries/events. The firehose of
// every delivery's transitions is reserved for dispatcher and admin roles.
func (s *Server) StreamAllDeliveries(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "authentication required")
	}
	if !actor.Role.IsPrivileged() {
		return jsonError(c, http.StatusForbidden, "the event firehose requires a privileged role")
	}

	return s.stream(c, broadcast.ScopeAll())
}

// stream subscribes a connection for the scope and pumps its events to the
// client as SSE frames. It returns when the client goes away or the
// connection is closed underneath it (eviction or shutdown).
func (s *Server) stream(c echo.Context, scope broadcast.Scope) error {
	conn := s.registry.Subscribe(scope)
	defer s.registry.Unsubscribe(conn)

	header := c.Response().Header()
	header.Set(echo.HeaderContentType, "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, open := <-conn.Events():
			if !open {
				return nil
			}

			data, err := json.Marshal(toEventView(event))
			if err != nil {
				s.logger.Error("failed to encode stream event", "error", err)
				continue
			}

			if _, err = fmt.Fprintf(c.Response(), "event: %s\ndata: %s\n\n", event.Kind, data); err != nil {
				return nil
			}
			c.Response().Flush()
		}
	}
}
