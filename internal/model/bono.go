package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados posibles de un bono. Todos menos "cobrado" cuentan como pendientes;
// "cobrado" es terminal para el flujo de validación.
const (
	BonoActivo    = "activo"
	BonoInactivo  = "inactivo"
	BonoCobrado   = "cobrado"
	BonoNoCobrado = "no_cobrado"
)

// Bono is one promotional voucher tied to an identity document.
// The (DocumentType, DocumentNumber) pair is unique: at most one bono per
// document. Field names follow the original API contract (clientName,
// documentNumber, …) so existing clients keep working.
type Bono struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientName     string    `gorm:"not null"`
	TicketNumber   *string   `gorm:"uniqueIndex"`
	TipoBonoID     uuid.UUID `gorm:"type:uuid;not null;index"`
	DocumentType   string    `gorm:"not null;uniqueIndex:idx_bonos_documento,priority:1"`
	DocumentNumber string    `gorm:"not null;uniqueIndex:idx_bonos_documento,priority:2"`
	PhoneNumber    string    `gorm:"not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'activo'"`
	Observations   *string
	// ValidatedBy / ValidatedAt record who redeemed the bono and when.
	// Both are set together when Status becomes "cobrado".
	ValidatedBy *uuid.UUID `gorm:"type:uuid"`
	ValidatedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	TipoBono        *TipoBono `gorm:"foreignKey:TipoBonoID"`
	ValidatedByUser *Usuario  `gorm:"foreignKey:ValidatedBy"`
}
