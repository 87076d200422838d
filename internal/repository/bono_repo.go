package repository

import (
	"context"
	"errors"

	"github.com/victorolivaresat/bono-go/internal/dto"
	"github.com/victorolivaresat/bono-go/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BonoRepository defines the data access contract for bonos.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type BonoRepository interface {
	Create(ctx context.Context, b *model.Bono) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bono, error)
	// FindByDocumento returns the newest bono for the document pair. Legacy
	// data may hold duplicates despite the unique index; newest-first masks them.
	FindByDocumento(ctx context.Context, documentType, documentNumber string) (*model.Bono, error)
	ExistsByDocumento(ctx context.Context, documentType, documentNumber string) (bool, error)
	List(ctx context.Context, filter dto.BonoFilter) ([]model.Bono, error)
	Update(ctx context.Context, b *model.Bono) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByTipo(ctx context.Context, tipoBonoID uuid.UUID) (int64, error)
	// CountValidadosPorUsuario returns bonos redeemed per user id.
	CountValidadosPorUsuario(ctx context.Context) (map[uuid.UUID]int64, error)
}

type bonoRepo struct{ db *gorm.DB }

func NewBonoRepository(db *gorm.DB) BonoRepository { return &bonoRepo{db: db} }

func (r *bonoRepo) Create(ctx context.Context, b *model.Bono) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bonoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Bono, error) {
	var b model.Bono
	err := r.db.WithContext(ctx).
		Preload("TipoBono").Preload("ValidatedByUser").
		First(&b, id).Error
	return &b, err
}

func (r *bonoRepo) FindByDocumento(ctx context.Context, documentType, documentNumber string) (*model.Bono, error) {
	var b model.Bono
	err := r.db.WithContext(ctx).
		Preload("TipoBono").Preload("ValidatedByUser").
		Where("document_type = ? AND document_number = ?", documentType, documentNumber).
		Order("created_at DESC").
		First(&b).Error
	return &b, err
}

func (r *bonoRepo) ExistsByDocumento(ctx context.Context, documentType, documentNumber string) (bool, error) {
	var b model.Bono
	err := r.db.WithContext(ctx).
		Select("id").
		Where("document_type = ? AND document_number = ?", documentType, documentNumber).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *bonoRepo) List(ctx context.Context, filter dto.BonoFilter) ([]model.Bono, error) {
	var bonos []model.Bono

	q := r.db.WithContext(ctx).Model(&model.Bono{}).
		Preload("TipoBono").Preload("ValidatedByUser")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		p := "%" + filter.Search + "%"
		q = q.Where("client_name ILIKE ? OR ticket_number ILIKE ? OR document_number ILIKE ?", p, p, p)
	}

	err := q.Order("created_at DESC").Find(&bonos).Error
	return bonos, err
}

func (r *bonoRepo) Update(ctx context.Context, b *model.Bono) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *bonoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Bono{}, id).Error
}

func (r *bonoRepo) CountByTipo(ctx context.Context, tipoBonoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Bono{}).
		Where("tipo_bono_id = ?", tipoBonoID).Count(&n).Error
	return n, err
}

func (r *bonoRepo) CountValidadosPorUsuario(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		ValidatedBy uuid.UUID
		Total       int64
	}
	err := r.db.WithContext(ctx).Model(&model.Bono{}).
		Select("validated_by, COUNT(*) AS total").
		Where("validated_by IS NOT NULL").
		Group("validated_by").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.ValidatedBy] = row.Total
	}
	return counts, nil
}
