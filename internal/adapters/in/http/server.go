// Package http exposes the delivery service over a JSON REST surface plus
// SSE event streams. The layer stays thin: it binds payloads, resolves the
// authenticated actor and maps domain rejections onto status codes; every
// decision belongs to the handlers underneath.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"livraison/internal/adapters/out/webhooknotify"
	"livraison/internal/broadcast"
	"livraison/internal/core/application/usecases/commands"
	"livraison/internal/core/application/usecases/queries"
	"livraison/internal/core/domain/model/account"
	"livraison/internal/core/domain/model/delivery"
	"livraison/internal/core/domain/model/kernel"
	"livraison/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	registerHandler   commands.RegisterAccountCommandHandler
	createHandler     commands.CreateDeliveryCommandHandler
	transitionHandler commands.RequestTransitionCommandHandler
	listHandler       queries.ListDeliveriesQueryHandler
	getHandler        queries.GetDeliveryQueryHandler

	accountUoWFactory commands.AccountUoWFactory
	registry          *broadcast.Registry
	notifier          *webhooknotify.WebhookNotifier

	jwtSecret string
	tokenTTL  time.Duration
	logger    *slog.Logger
}

// NewServer creates the HTTP server with the required handlers and
// collaborators.
func NewServer(
	registerHandler commands.RegisterAccountCommandHandler,
	createHandler commands.CreateDeliveryCommandHandler,
	transitionHandler commands.RequestTransitionCommandHandler,
	listHandler queries.ListDeliveriesQueryHandler,
	getHandler queries.GetDeliveryQueryHandler,
	accountUoWFactory commands.AccountUoWFactory,
	registry *broadcast.Registry,
	notifier *webhooknotify.WebhookNotifier,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *slog.Logger,
) *Server {
	return &Server{
		registerHandler:   registerHandler,
		createHandler:     createHandler,
		transitionHandler: transitionHandler,
		listHandler:       listHandler,
		getHandler:        getHandler,
		accountUoWFactory: accountUoWFactory,
		registry:          registry,
		notifier:          notifier,
		jwtSecret:         jwtSecret,
		tokenTTL:          tokenTTL,
		logger:            logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
// The events routes are registered before the :id routes so echo does not
// swallow "events" as a delivery ID.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/auth/register", s.Register)
	api.POST("/auth/login", s.Login)

	protected := api.Group("", NewAuthMiddleware(s.jwtSecret))
	protected.POST("/deliveries", s.CreateDelivery)
	protected.GET("/deliveries", s.ListDeliveries)
	protected.GET("/deliveries/events", s.StreamAllDeliveries)
	protected.GET("/deliveries/:id", s.GetDelivery)
	protected.POST("/deliveries/:id/transition", s.RequestTransition)
	protected.GET("/deliveries/:id/events", s.StreamDelivery)
	protected.POST("/webhooks", s.RegisterWebhook)
	protected.DELETE("/webhooks", s.UnregisterWebhook)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Register handles POST /api/v1/auth/register.
func (s *Server) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	role, err := account.RoleFromString(req.Role)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "unknown role: "+req.Role)
	}

	accountID := kernel.NewUUID()
	cmd, err := commands.NewRegisterAccountCommand(
		accountID, req.Name, req.Email, req.Phone, req.Password, role,
	)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	if err = s.registerHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.domainError(c, err)
	}

	token, err := IssueToken(s.jwtSecret, accountID, role, s.tokenTTL)
	if err != nil {
		return s.domainError(c, err)
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Token:     token,
		AccountID: accountID.String(),
		Role:      role.String(),
	})
}

// Login handles POST /api/v1/auth/login.
// Unknown phone and wrong password are indistinguishable in the response.
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	repo := s.accountUoWFactory.Create().AccountRepository()
	found, err := repo.GetByPhone(c.Request().Context(), req.Phone)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return jsonError(c, http.StatusUnauthorized, "invalid credentials")
		}
		return s.domainError(c, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(found.PasswordHash()), []byte(req.Password)) != nil {
		return jsonError(c, http.StatusUnauthorized, "invalid credentials")
	}

	token, err := IssueToken(s.jwtSecret, found.ID(), found.Role(), s.tokenTTL)
	if err != nil {
		return s.domainError(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Token:     token,
		AccountID: found.ID().String(),
		Role:      found.Role().String(),
	})
}

// CreateDelivery handles POST /api/v1/deliveries. Requesters only; couriers
// and privileged roles create nothing on behalf of others.
func (s *Server) CreateDelivery(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "authentication required")
	}
	if actor.Role != account.RoleRequester {
		return jsonError(c, http.StatusForbidden, "only requesters create deliveries")
	}

	var req CreateDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	kind, err := delivery.PackageKindFromString(req.Kind)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "unknown package kind: "+req.Kind)
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(
		deliveryID, actor.ID, kind, req.Description,
		req.PickupAddress, req.DropoffAddress, req.Price,
	)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	if err = s.createHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.domainError(c, err)
	}

	return c.JSON(http.StatusCreated, CreateDeliveryResponse{ID: deliveryID.String()})
}

// RequestTransition handles POST /api/v1/deliveries/:id/transition.
// A successful move answers with the resulting delivery state, so the client
// holds the refreshed version without a follow-up read.
func (s *Server) RequestTransition(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "authentication required")
	}

	deliveryID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid delivery id")
	}

	var req TransitionRequest
	if err = c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	target, err := delivery.StatusFromString(req.Target)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "unknown target status: "+req.Target)
	}

	var assigneeID *kernel.UUID
	if req.AssigneeID != nil {
		parsed, parseErr := kernel.UUIDFromString(*req.AssigneeID)
		if parseErr != nil {
			return jsonError(c, http.StatusBadRequest, "invalid assignee id")
		}
		assigneeID = &parsed
	}

	cmd, err := commands.NewRequestTransitionCommand(deliveryID, target, actor.ID, assigneeID)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	moved, err := s.transitionHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.domainError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryViewFromAggregate(moved))
}

// ListDeliveries handles GET /api/v1/deliveries.
func (s *Server) ListDeliveries(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "authentication required")
	}

	var status *delivery.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed, err := delivery.StatusFromString(raw)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "unknown status filter: "+raw)
		}
		status = &parsed
	}

	query, err := queries.NewListDeliveriesQuery(actor.ID, actor.Role, status)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	deliveries, err := s.listHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.domainError(c, err)
	}

	views := make([]DeliveryView, len(deliveries))
	for i, response := range deliveries {
		views[i] = toDeliveryView(response)
	}

	return c.JSON(http.StatusOK, views)
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *Server) GetDelivery(c echo.Context) error {
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

	response, err := s.getHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.domainError(c, err)
	}

	return c.JSON(http.StatusOK, toDeliveryView(response))
}

// RegisterWebhook handles POST /api/v1/webhooks. Dispatcher and admin only.
func (s *Server) RegisterWebhook(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok || !actor.Role.IsPrivileged() {
		return jsonError(c, http.StatusForbidden, "webhook management requires a privileged role")
	}

	var req WebhookRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	if err := s.notifier.Register(req.URL); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid webhook url")
	}

	return c.NoContent(http.StatusCreated)
}

// UnregisterWebhook handles DELETE /api/v1/webhooks. Dispatcher and admin only.
func (s *Server) UnregisterWebhook(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok || !actor.Role.IsPrivileged() {
		return jsonError(c, http.StatusForbidden, "webhook management requires a privileged role")
	}

	var req WebhookRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	if !s.notifier.Unregister(req.URL) {
		return jsonError(c, http.StatusNotFound, "webhook url is not registered")
	}

	return c.NoContent(http.StatusNoContent)
}

// domainError maps a use case rejection onto an HTTP status.
// Lifecycle conflicts (terminal status, lost optimistic write) are 409;
// a structurally valid but disallowed move is 422; authorization is 403.
func (s *Server) domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return jsonError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrAlreadyTerminal),
		errors.Is(err, errs.ErrVersionConflict),
		errors.Is(err, commands.ErrPhoneAlreadyRegistered):
		return jsonError(c, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidTransition):
		return jsonError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		actor, _ := actorFromContext(c)
		s.logger.Warn("forbidden request rejected",
			"actor_id", actor.ID.String(),
			"role", actor.Role.String(),
			"path", c.Request().URL.Path,
			"error", err)
		return jsonError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrInvalidAssignee),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		return jsonError(c, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		return jsonError(c, http.StatusInternalServerError, "internal error")
	}
}

func jsonError(c echo.Context, code int, message string) error {
	return c.JSON(code, Error{Code: code, Message: message})
}
