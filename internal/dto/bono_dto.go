package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearBonoRequest struct {
	ClientName     string  `json:"clientName"     validate:"required,min=1"`
	TicketNumber   *string `json:"ticketNumber"`
	TipoBonoID     string  `json:"tipoBonoId"     validate:"required,uuid"`
	DocumentNumber string  `json:"documentNumber" validate:"required,min=1"`
	DocumentType   string  `json:"documentType"   validate:"required,min=1"`
	PhoneNumber    string  `json:"phoneNumber"    validate:"required,min=1"`
	Status         string  `json:"status"         validate:"required,oneof=cobrado no_cobrado activo inactivo"`
	Observations   *string `json:"observations"`
}

// ActualizarBonoRequest: nil pointer = skip field, present pointer = set it.
// Observations is the only field that may be set back to empty on purpose.
type ActualizarBonoRequest struct {
	ClientName     *string `json:"clientName"     validate:"omitempty,min=1"`
	TicketNumber   *string `json:"ticketNumber"   validate:"omitempty,min=1"`
	TipoBonoID     *string `json:"tipoBonoId"     validate:"omitempty,uuid"`
	DocumentNumber *string `json:"documentNumber" validate:"omitempty,min=1"`
	DocumentType   *string `json:"documentType"   validate:"omitempty,min=1"`
	PhoneNumber    *string `json:"phoneNumber"    validate:"omitempty,min=1"`
	Status         *string `json:"status"         validate:"omitempty,oneof=cobrado no_cobrado activo inactivo"`
	Observations   *string `json:"observations"`
}

// ValidarBonoRequest is the redemption payload. Observations overwrites the
// stored value, even back to null.
type ValidarBonoRequest struct {
	TicketNumber string  `json:"ticketNumber" validate:"required,min=1"`
	Observations *string `json:"observations"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type BonoFilter struct {
	Status string `form:"status" validate:"omitempty,oneof=cobrado no_cobrado activo inactivo"`
	Search string `form:"search"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BonoResponse struct {
	ID              string            `json:"id"`
	ClientName      string            `json:"clientName"`
	TicketNumber    *string           `json:"ticketNumber"`
	TipoBonoID      string            `json:"tipoBonoId"`
	DocumentNumber  string            `json:"documentNumber"`
	DocumentType    string            `json:"documentType"`
	PhoneNumber     string            `json:"phoneNumber"`
	Status          string            `json:"status"`
	Observations    *string           `json:"observations"`
	ValidatedBy     *string           `json:"validatedBy"`
	ValidatedAt     *time.Time        `json:"validatedAt"`
	CreatedAt       time.Time         `json:"createdAt"`
	TipoBono        *TipoBonoResponse `json:"tipoBono,omitempty"`
	ValidatedByUser *UsuarioResumen   `json:"validatedByUser,omitempty"`
}
