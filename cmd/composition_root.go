package cmd

import (
	"log/slog"

	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/customerrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/outboxrepo"
	"fooddelivery/internal/adapters/out/postgres/workerrepo"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	identity   ports.IdentityProvider
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		identity:   httpin.NewContextIdentityProvider(),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.identity)
}

func (c *CompositionRoot) CreateListWorkerOrdersQueryHandler() queries.ListWorkerOrdersQueryHandler {
	return queries.NewListWorkerOrdersQueryHandler(c.identity, queries.Readers{
		Workers:   workerrepo.NewGormWorkerRepository(c.gormDB),
		Orders:    orderrepo.NewGormOrderRepository(c.gormDB, nil),
		Items:     orderrepo.NewGormOrderItemRepository(c.gormDB),
		Customers: customerrepo.NewGormCustomerRepository(c.gormDB),
		Addresses: customerrepo.NewGormAddressRepository(c.gormDB),
	}, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateListWorkerOrdersQueryHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.logger,
	)
}

// CreateJobManager wires the outbox relay to publisher. The caller owns the
// publisher and closes it after the jobs stop.
func (c *CompositionRoot) CreateJobManager(publisher ports.OrderEventPublisher) *jobs.JobManager {
	relay := jobs.NewOrderEventsRelayJob(
		outboxrepo.NewGormOutboxRepository(c.gormDB),
		publisher,
		c.configs.RelayBatchSize,
		c.logger,
	)
	return jobs.NewJobManager(relay)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
