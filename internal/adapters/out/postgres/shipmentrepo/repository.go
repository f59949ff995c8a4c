package shipmentrepo

import (
	"context"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Add saves a single shipment to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddAll saves the given shipments in one batched write.
func (r *GormShipmentRepository) AddAll(ctx context.Context, shipments []*shipment.Shipment) error {
	if len(shipments) == 0 {
		return nil
	}

	dtos := make([]ShipmentDTO, 0, len(shipments))
	for _, s := range shipments {
		if err := s.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(s))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetByOrder retrieves every shipment committed against the order, ordered
// by ship time ascending.
func (r *GormShipmentRepository) GetByOrder(ctx context.Context, orderID int) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("shipped_at asc").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

// Count returns the number of persisted shipments.
func (r *GormShipmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
