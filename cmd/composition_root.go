package cmd

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	httpadapter "livraison/internal/adapters/in/http"
	"livraison/internal/adapters/out/postgres"
	"livraison/internal/adapters/out/webhooknotify"
	"livraison/internal/broadcast"
	"livraison/internal/core/application/usecases/commands"
	"livraison/internal/core/application/usecases/queries"
	"livraison/internal/core/domain/services"
	"livraison/internal/jobs"
)

// CompositionRoot wires every adapter and handler together. It owns the
// long-lived collaborators (hub, registry, notifier) so main can start and
// stop them around the HTTP server's lifetime.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	registry   *broadcast.Registry
	hub        *broadcast.Hub
	notifier   *webhooknotify.WebhookNotifier
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	registry := broadcast.NewRegistry(config.ConnectionBufferSize)
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		hub:        broadcast.NewHub(registry, config.HubQueueSize, logger),
		notifier:   webhooknotify.NewWebhookNotifier(config.WebhookTimeout, logger),
		logger:     logger,
	}
}

// Hub returns the broadcast hub so main can start and stop the fan-out.
func (c *CompositionRoot) Hub() *broadcast.Hub {
	return c.hub
}

// Registry returns the connection registry so main can close it at shutdown.
func (c *CompositionRoot) Registry() *broadcast.Registry {
	return c.registry
}

// Notifier returns the webhook notifier so main can wait out in-flight
// deliveries at shutdown.
func (c *CompositionRoot) Notifier() *webhooknotify.WebhookNotifier {
	return c.notifier
}

func (c *CompositionRoot) CreateRegisterAccountCommandHandler() commands.RegisterAccountCommandHandler {
	var f commands.AccountUoWFactory = FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterAccountCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f, c.hub, c.notifier)
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() commands.RequestTransitionCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestTransitionCommandHandler(f, services.NewTransitionEngine(), c.hub, c.notifier)
}

func (c *CompositionRoot) CreateRemindPendingDeliveriesCommandHandler() commands.RemindPendingDeliveriesCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemindPendingDeliveriesCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateListDeliveriesQueryHandler() queries.ListDeliveriesQueryHandler {
	return queries.NewListDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the HTTP server with every handler wired in.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	var f commands.AccountUoWFactory = FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})

	return httpadapter.NewServer(
		c.CreateRegisterAccountCommandHandler(),
		c.CreateCreateDeliveryCommandHandler(),
		c.CreateRequestTransitionCommandHandler(),
		c.CreateListDeliveriesQueryHandler(),
		c.CreateGetDeliveryQueryHandler(),
		f,
		c.registry,
		c.notifier,
		c.config.JWTSecret,
		c.config.TokenTTL,
		c.logger,
	)
}

// CreateJobManager builds the manager for all scheduled background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	olderThan := c.config.PendingReminderAfter
	if olderThan <= 0 {
		olderThan = 30 * time.Minute
	}
	return jobs.NewJobManager(c.CreateRemindPendingDeliveriesCommandHandler(), olderThan, c.logger)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
