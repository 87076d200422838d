package repository

import (
	"context"

	"github.com/victorolivaresat/bono-go/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TipoBonoRepository interface {
	Create(ctx context.Context, t *model.TipoBono) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TipoBono, error)
	// List returns all types newest-first.
	List(ctx context.Context) ([]model.TipoBono, error)
	// CountBonosPorTipo returns bonos assigned per type id, for the list view.
	CountBonosPorTipo(ctx context.Context) (map[uuid.UUID]int64, error)
	Update(ctx context.Context, t *model.TipoBono) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tipoBonoRepo struct{ db *gorm.DB }

func NewTipoBonoRepository(db *gorm.DB) TipoBonoRepository { return &tipoBonoRepo{db: db} }

func (r *tipoBonoRepo) Create(ctx context.Context, t *model.TipoBono) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tipoBonoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TipoBono, error) {
	var t model.TipoBono
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *tipoBonoRepo) List(ctx context.Context) ([]model.TipoBono, error) {
	var tipos []model.TipoBono
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tipos).Error
	return tipos, err
}

func (r *tipoBonoRepo) CountBonosPorTipo(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		TipoBonoID uuid.UUID
		Total      int64
	}
	err := r.db.WithContext(ctx).Model(&model.Bono{}).
		Select("tipo_bono_id, COUNT(*) AS total").
		Group("tipo_bono_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.TipoBonoID] = row.Total
	}
	return counts, nil
}

func (r *tipoBonoRepo) Update(ctx context.Context, t *model.TipoBono) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *tipoBonoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TipoBono{}, id).Error
}
