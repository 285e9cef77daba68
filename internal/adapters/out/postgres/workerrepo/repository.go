// Package workerrepo reads delivery worker profiles from the deliveries table.
package workerrepo

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/worker"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryDTO is a row of the deliveries table, one per delivery worker.
// City stays NULL until the worker finishes profile setup.
type DeliveryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	City      *string   `gorm:"type:varchar(128)"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for delivery workers.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// GormWorkerRepository implements ports.WorkerRepository using GORM.
type GormWorkerRepository struct {
	db *gorm.DB
}

// NewGormWorkerRepository creates a new GORM worker repository.
func NewGormWorkerRepository(db *gorm.DB) *GormWorkerRepository {
	return &GormWorkerRepository{db: db}
}

// Get retrieves the worker whose user id is userID.
func (r *GormWorkerRepository) Get(ctx context.Context, userID kernel.UUID) (worker.Worker, error) {
	if err := userID.Validate(); err != nil {
		return worker.Worker{}, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).
		Select("user_id", "city").
		First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return worker.Worker{}, errs.NewObjectNotFoundError("worker", userID.String())
		}
		return worker.Worker{}, err
	}

	city := ""
	if dto.City != nil {
		city = *dto.City
	}
	w, err := worker.RestoreWorker(userID, city)
	if err != nil {
		return worker.Worker{}, ports.NewStoredRecordError("deliveries", dto.UserID, err)
	}
	return w, nil
}
