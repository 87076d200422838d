package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Fechas se aceptan como "2006-01-02" o RFC3339.
type CrearTipoBonoRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=1,max=120"`
	Descripcion *string `json:"descripcion"`
	FechaInicio string  `json:"fechaInicio" validate:"required"`
	FechaFin    string  `json:"fechaFin"    validate:"required"`
	Activo      *bool   `json:"activo"`
}

// ActualizarTipoBonoRequest uses pointer fields: nil means "leave untouched",
// a present value overwrites. This is how partial PATCH semantics are kept.
type ActualizarTipoBonoRequest struct {
	Nombre      *string `json:"nombre"      validate:"omitempty,min=1,max=120"`
	Descripcion *string `json:"descripcion"`
	FechaInicio *string `json:"fechaInicio"`
	FechaFin    *string `json:"fechaFin"`
	Activo      *bool   `json:"activo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TipoBonoResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion *string   `json:"descripcion"`
	FechaInicio time.Time `json:"fechaInicio"`
	FechaFin    time.Time `json:"fechaFin"`
	Activo      bool      `json:"activo"`
	CreatedAt   time.Time `json:"createdAt"`
	// BonosAsignados counts the bonos created under this type.
	BonosAsignados int64 `json:"bonosAsignados"`
}
