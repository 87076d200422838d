package service

import (
	"context"
	"errors"
	"time"

	"github.com/victorolivaresat/bono-go/internal/dto"
	"github.com/victorolivaresat/bono-go/internal/model"
	"github.com/victorolivaresat/bono-go/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValidacionService decides whether a bono may transition to "cobrado" and
// performs the transition. This is the only state machine in the system:
// activo / inactivo / no_cobrado are all pending; cobrado is terminal here
// (reversal is a plain field edit through BonoService, deliberately unguarded).
type ValidacionService interface {
	// BuscarPorDocumento returns the newest bono for the document pair.
	BuscarPorDocumento(ctx context.Context, documentType, documentNumber string) (*dto.BonoResponse, error)
	// Validar redeems the bono at instant ahora, recording who redeemed it.
	Validar(ctx context.Context, bonoID uuid.UUID, req dto.ValidarBonoRequest, usuarioID uuid.UUID, ahora time.Time) (*dto.BonoResponse, error)
}

type validacionService struct {
	bonos repository.BonoRepository
	tipos repository.TipoBonoRepository
	cache *tipoBonoCache
}

func NewValidacionService(bonos repository.BonoRepository, tipos repository.TipoBonoRepository, cache *tipoBonoCache) ValidacionService {
	return &validacionService{bonos: bonos, tipos: tipos, cache: cache}
}

func (s *validacionService) BuscarPorDocumento(ctx context.Context, documentType, documentNumber string) (*dto.BonoResponse, error) {
	bono, err := s.bonos.FindByDocumento(ctx, documentType, documentNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBonoNoEncontrado
		}
		return nil, err
	}
	return bonoToResponse(bono), nil
}

func (s *validacionService) Validar(ctx context.Context, bonoID uuid.UUID, req dto.ValidarBonoRequest, usuarioID uuid.UUID, ahora time.Time) (*dto.BonoResponse, error) {
	bono, err := s.bonos.FindByID(ctx, bonoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBonoNoEncontrado
		}
		return nil, err
	}

	if bono.Status == model.BonoCobrado {
		return nil, ErrBonoYaCobrado
	}
	if bono.Status == model.BonoInactivo {
		return nil, ErrBonoInactivo
	}

	tipo, err := s.obtenerTipo(ctx, bono.TipoBonoID)
	if err != nil {
		return nil, err
	}

	// Ventana de vigencia con extremos inclusivos: ahora == inicio y
	// ahora == fin son cobrables.
	if ahora.Before(tipo.FechaInicio) {
		return nil, ErrBonoNoVigente
	}
	if ahora.After(tipo.FechaFin) {
		return nil, ErrBonoExpirado
	}

	ticket := req.TicketNumber
	bono.Status = model.BonoCobrado
	bono.TicketNumber = &ticket
	bono.Observations = req.Observations
	bono.ValidatedBy = &usuarioID
	bono.ValidatedAt = &ahora

	if err := s.bonos.Update(ctx, bono); err != nil {
		return nil, err
	}

	actualizado, err := s.bonos.FindByID(ctx, bono.ID)
	if err != nil {
		return nil, err
	}
	return bonoToResponse(actualizado), nil
}

func (s *validacionService) obtenerTipo(ctx context.Context, id uuid.UUID) (*model.TipoBono, error) {
	if tipo := s.cache.Get(ctx, id); tipo != nil {
		return tipo, nil
	}
	tipo, err := s.tipos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTipoBonoNoEncontrado
		}
		return nil, err
	}
	s.cache.Set(ctx, tipo)
	return tipo, nil
}
