package rowrepo

import (
	"context"
	"errors"
	"strconv"

	"notifier/internal/core/domain/model/order"
	"notifier/internal/core/ports"
	"notifier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRowRepository implements RowSource using GORM.
type GormRowRepository struct {
	db *gorm.DB
}

// NewGormRowRepository creates a new GORM row repository.
func NewGormRowRepository(db *gorm.DB) *GormRowRepository {
	return &GormRowRepository{db: db}
}

// Migrate ensures the order_rows table exists with the expected columns.
// Run once at startup, before the first pass reads the table.
func (r *GormRowRepository) Migrate() error {
	return r.db.AutoMigrate(&RowDTO{})
}

// ReadAll retrieves every order row as a fresh snapshot, ordered by row ID.
// Rows are never cached between passes.
func (r *GormRowRepository) ReadAll(ctx context.Context) ([]*order.Line, error) {
	var dtos []RowDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, errors.Join(ports.ErrRowSourceUnavailable, err)
	}

	lines := make([]*order.Line, 0, len(dtos))
	for _, dto := range dtos {
		line, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// WriteStatus updates the status cell of a single row. Each call is its own
// statement: one row's write failing leaves every other row's mark in place.
func (r *GormRowRepository) WriteStatus(ctx context.Context, rowID string, status order.DeliveryStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	id, err := strconv.ParseInt(rowID, 10, 64)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("rowID", err)
	}

	result := r.db.WithContext(ctx).
		Model(&RowDTO{}).
		Where("id = ?", id).
		Update("msg_status", status.CellValue())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order row", rowID)
	}

	return nil
}
