package service

import (
	"context"
	"errors"

	"github.com/victorolivaresat/bono-go/internal/dto"
	"github.com/victorolivaresat/bono-go/internal/model"
	"github.com/victorolivaresat/bono-go/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TipoBonoService manages campaign definitions (name, validity window, flag).
type TipoBonoService interface {
	Crear(ctx context.Context, req dto.CrearTipoBonoRequest) (*dto.TipoBonoResponse, error)
	Listar(ctx context.Context) ([]dto.TipoBonoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarTipoBonoRequest) (*dto.TipoBonoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type tipoBonoService struct {
	tipos repository.TipoBonoRepository
	bonos repository.BonoRepository
	cache *tipoBonoCache
}

func NewTipoBonoService(tipos repository.TipoBonoRepository, bonos repository.BonoRepository, cache *tipoBonoCache) TipoBonoService {
	return &tipoBonoService{tipos: tipos, bonos: bonos, cache: cache}
}

func (s *tipoBonoService) Crear(ctx context.Context, req dto.CrearTipoBonoRequest) (*dto.TipoBonoResponse, error) {
	inicio, err := parseFecha(req.FechaInicio)
	if err != nil {
		return nil, err
	}
	fin, err := parseFecha(req.FechaFin)
	if err != nil {
		return nil, err
	}

	// No se valida inicio < fin: una ventana invertida es legal y simplemente
	// deja los bonos fuera de vigencia siempre.
	tipo := &model.TipoBono{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		FechaInicio: inicio,
		FechaFin:    fin,
		Activo:      true,
	}
	if req.Activo != nil {
		tipo.Activo = *req.Activo
	}
	if err := s.tipos.Create(ctx, tipo); err != nil {
		return nil, err
	}
	resp := tipoBonoToResponse(tipo, 0)
	return &resp, nil
}

func (s *tipoBonoService) Listar(ctx context.Context) ([]dto.TipoBonoResponse, error) {
	tipos, err := s.tipos.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.tipos.CountBonosPorTipo(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TipoBonoResponse, len(tipos))
	for i, t := range tipos {
		resp[i] = tipoBonoToResponse(&t, counts[t.ID])
	}
	return resp, nil
}

func (s *tipoBonoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarTipoBonoRequest) (*dto.TipoBonoResponse, error) {
	tipo, err := s.tipos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTipoBonoNoEncontrado
		}
		return nil, err
	}

	if req.Nombre != nil {
		tipo.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		tipo.Descripcion = req.Descripcion
	}
	if req.FechaInicio != nil {
		inicio, err := parseFecha(*req.FechaInicio)
		if err != nil {
			return nil, err
		}
		tipo.FechaInicio = inicio
	}
	if req.FechaFin != nil {
		fin, err := parseFecha(*req.FechaFin)
		if err != nil {
			return nil, err
		}
		tipo.FechaFin = fin
	}
	if req.Activo != nil {
		tipo.Activo = *req.Activo
	}

	if err := s.tipos.Update(ctx, tipo); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id)

	counts, err := s.tipos.CountBonosPorTipo(ctx)
	if err != nil {
		return nil, err
	}
	resp := tipoBonoToResponse(tipo, counts[tipo.ID])
	return &resp, nil
}

// Eliminar blocks the delete while bonos still reference the type, so the
// conflict surfaces as a clear business error instead of an FK violation.
func (s *tipoBonoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tipos.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTipoBonoNoEncontrado
		}
		return err
	}
	n, err := s.bonos.CountByTipo(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrTipoBonoEnUso
	}
	if err := s.tipos.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}
