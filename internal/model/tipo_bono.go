package model

import (
	"time"

	"github.com/google/uuid"
)

// TipoBono defines a campaign: a validity window shared by all the bonos
// assigned under it. Desactivar is a soft flag; it never blocks deletion.
// FechaInicio > FechaFin is allowed on purpose: an inverted window simply
// makes the bonos never redeemable.
type TipoBono struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	FechaInicio time.Time `gorm:"not null"`
	FechaFin    time.Time `gorm:"not null"`
	Activo      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
