package service

import (
	"fmt"
	"time"

	"github.com/victorolivaresat/bono-go/internal/dto"
	"github.com/victorolivaresat/bono-go/internal/model"
)

func tipoBonoToResponse(t *model.TipoBono, bonosAsignados int64) dto.TipoBonoResponse {
	return dto.TipoBonoResponse{
		ID:             t.ID.String(),
		Nombre:         t.Nombre,
		Descripcion:    t.Descripcion,
		FechaInicio:    t.FechaInicio,
		FechaFin:       t.FechaFin,
		Activo:         t.Activo,
		CreatedAt:      t.CreatedAt,
		BonosAsignados: bonosAsignados,
	}
}

func bonoToResponse(b *model.Bono) *dto.BonoResponse {
	resp := &dto.BonoResponse{
		ID:             b.ID.String(),
		ClientName:     b.ClientName,
		TicketNumber:   b.TicketNumber,
		TipoBonoID:     b.TipoBonoID.String(),
		DocumentNumber: b.DocumentNumber,
		DocumentType:   b.DocumentType,
		PhoneNumber:    b.PhoneNumber,
		Status:         b.Status,
		Observations:   b.Observations,
		ValidatedAt:    b.ValidatedAt,
		CreatedAt:      b.CreatedAt,
	}
	if b.ValidatedBy != nil {
		id := b.ValidatedBy.String()
		resp.ValidatedBy = &id
	}
	if b.TipoBono != nil {
		tipo := tipoBonoToResponse(b.TipoBono, 0)
		resp.TipoBono = &tipo
	}
	if b.ValidatedByUser != nil {
		resp.ValidatedByUser = &dto.UsuarioResumen{
			ID:     b.ValidatedByUser.ID.String(),
			Nombre: b.ValidatedByUser.Nombre,
			Email:  b.ValidatedByUser.Email,
		}
	}
	return resp
}

// parseFecha accepts "2006-01-02" (date pickers) or RFC3339 (API clients).
func parseFecha(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrFechaInvalida, s)
	}
	return t, nil
}
