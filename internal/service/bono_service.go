package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/victorolivaresat/bono-go/internal/dto"
	"github.com/victorolivaresat/bono-go/internal/model"
	"github.com/victorolivaresat/bono-go/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BonoService owns voucher records: create/read/update/delete/search.
type BonoService interface {
	Crear(ctx context.Context, req dto.CrearBonoRequest) (*dto.BonoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.BonoResponse, error)
	Listar(ctx context.Context, filter dto.BonoFilter) ([]dto.BonoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarBonoRequest) (*dto.BonoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type bonoService struct {
	bonos repository.BonoRepository
}

func NewBonoService(bonos repository.BonoRepository) BonoService {
	return &bonoService{bonos: bonos}
}

// Crear rejects a second bono for the same document pair before inserting.
// The pre-check gives a readable message; the unique index on
// (document_type, document_number) remains the final arbiter under races.
func (s *bonoService) Crear(ctx context.Context, req dto.CrearBonoRequest) (*dto.BonoResponse, error) {
	existe, err := s.bonos.ExistsByDocumento(ctx, req.DocumentType, req.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, fmt.Errorf("%w para %s %s", ErrBonoDuplicado, req.DocumentType, req.DocumentNumber)
	}

	tipoID, err := uuid.Parse(req.TipoBonoID)
	if err != nil {
		return nil, err
	}

	bono := &model.Bono{
		ClientName:     req.ClientName,
		TipoBonoID:     tipoID,
		DocumentNumber: req.DocumentNumber,
		DocumentType:   req.DocumentType,
		PhoneNumber:    req.PhoneNumber,
		Status:         req.Status,
		Observations:   req.Observations,
	}
	// Ticket vacío se guarda como null, no como cadena vacía.
	if req.TicketNumber != nil && *req.TicketNumber != "" {
		bono.TicketNumber = req.TicketNumber
	}

	if err := s.bonos.Create(ctx, bono); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, bono.ID)
}

func (s *bonoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.BonoResponse, error) {
	bono, err := s.bonos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBonoNoEncontrado
		}
		return nil, err
	}
	return bonoToResponse(bono), nil
}

func (s *bonoService) Listar(ctx context.Context, filter dto.BonoFilter) ([]dto.BonoResponse, error) {
	bonos, err := s.bonos.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BonoResponse, len(bonos))
	for i := range bonos {
		resp[i] = *bonoToResponse(&bonos[i])
	}
	return resp, nil
}

// Actualizar applies only the fields present in the request: a nil pointer
// leaves the stored value untouched, a present pointer overwrites it (even
// with an empty string, in the case of observations).
func (s *bonoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarBonoRequest) (*dto.BonoResponse, error) {
	bono, err := s.bonos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBonoNoEncontrado
		}
		return nil, err
	}

	if req.ClientName != nil {
		bono.ClientName = *req.ClientName
	}
	if req.TicketNumber != nil {
		bono.TicketNumber = req.TicketNumber
	}
	if req.TipoBonoID != nil {
		tipoID, err := uuid.Parse(*req.TipoBonoID)
		if err != nil {
			return nil, err
		}
		bono.TipoBonoID = tipoID
		bono.TipoBono = nil
	}
	if req.DocumentNumber != nil {
		bono.DocumentNumber = *req.DocumentNumber
	}
	if req.DocumentType != nil {
		bono.DocumentType = *req.DocumentType
	}
	if req.PhoneNumber != nil {
		bono.PhoneNumber = *req.PhoneNumber
	}
	if req.Status != nil {
		bono.Status = *req.Status
	}
	if req.Observations != nil {
		bono.Observations = req.Observations
	}

	if err := s.bonos.Update(ctx, bono); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, bono.ID)
}

// Eliminar is unconditional: no soft delete, no guard.
func (s *bonoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.bonos.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBonoNoEncontrado
		}
		return err
	}
	return s.bonos.Delete(ctx, id)
}
