package application

import (
	"log/slog"
	"time"

	"github.com/mercacio/storefront-service/internal/ports"
)

type Service struct {
	cfg          Config
	logger       *slog.Logger
	stores       ports.StoreRepository
	products     ports.ProductRepository
	commissions  ports.CommissionRepository
	landingPages ports.LandingPageRepository
	outbox       ports.OutboxRepository
	cache        ports.StoreCache
	nowFn        func() time.Time
}

type Dependencies struct {
	Config       Config
	Logger       *slog.Logger
	Stores       ports.StoreRepository
	Products     ports.ProductRepository
	Commissions  ports.CommissionRepository
	LandingPages ports.LandingPageRepository
	Outbox       ports.OutboxRepository
	Cache        ports.StoreCache
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "storefront-service"
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		cfg:          cfg,
		logger:       logger,
		stores:       deps.Stores,
		products:     deps.Products,
		commissions:  deps.Commissions,
		landingPages: deps.LandingPages,
		outbox:       deps.Outbox,
		cache:        deps.Cache,
		nowFn:        time.Now().UTC,
	}
}
