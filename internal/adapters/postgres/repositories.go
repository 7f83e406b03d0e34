package postgres

import (
	"gorm.io/gorm"

	"github.com/mercacio/storefront-service/internal/ports"
)

type Repositories struct {
	Stores       ports.StoreRepository
	Products     ports.ProductRepository
	Commissions  ports.CommissionRepository
	LandingPages ports.LandingPageRepository
	Outbox       ports.OutboxRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Stores:       &storeRepository{db: db},
		Products:     &productRepository{db: db},
		Commissions:  &commissionRepository{db: db},
		LandingPages: &landingPageRepository{db: db},
		Outbox:       &outboxRepository{db: db},
	}
}
