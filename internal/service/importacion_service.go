package service

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/victorolivaresat/bono-go/internal/dto"
	"github.com/victorolivaresat/bono-go/internal/model"
	"github.com/victorolivaresat/bono-go/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ImportacionService turns decoded spreadsheet rows into bono/usuario
// creations. Failures are row-scoped: the batch always runs to completion and
// partial success is the normal outcome, not an error.
type ImportacionService interface {
	// ImportarBonos creates one bono per row, all under tipoBonoID.
	ImportarBonos(ctx context.Context, filas []map[string]string, tipoBonoID uuid.UUID) (*dto.ImportacionBonosResponse, error)
	ImportarUsuarios(ctx context.Context, filas []map[string]string) (*dto.ImportacionUsuariosResponse, error)
}

type importacionService struct {
	bonos    repository.BonoRepository
	tipos    repository.TipoBonoRepository
	usuarios repository.UsuarioRepository
}

func NewImportacionService(bonos repository.BonoRepository, tipos repository.TipoBonoRepository, usuarios repository.UsuarioRepository) ImportacionService {
	return &importacionService{bonos: bonos, tipos: tipos, usuarios: usuarios}
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (s *importacionService) ImportarBonos(ctx context.Context, filas []map[string]string, tipoBonoID uuid.UUID) (*dto.ImportacionBonosResponse, error) {
	if _, err := s.tipos.FindByID(ctx, tipoBonoID); err != nil {
		return nil, ErrTipoBonoNoEncontrado
	}

	resp := &dto.ImportacionBonosResponse{Bonos: []dto.BonoResponse{}}

	for i, fila := range filas {
		// +2: las filas de la hoja empiezan en 1 y la primera es el encabezado.
		numFila := i + 2

		cliente := strings.TrimSpace(fila["cliente"])
		dni := strings.TrimSpace(fila["dni"])
		tipoDocumento := strings.TrimSpace(fila["tipo_documento"])
		telefono := strings.TrimSpace(fila["telefono"])
		if telefono == "" {
			telefono = "Sin teléfono"
		}
		var observaciones *string
		if obs := strings.TrimSpace(fila["observaciones"]); obs != "" {
			observaciones = &obs
		}

		if cliente == "" || dni == "" || tipoDocumento == "" {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Fila %d: Faltan campos requeridos (cliente, dni, tipo_documento)", numFila))
			resp.ErrorCount++
			continue
		}

		existe, err := s.bonos.ExistsByDocumento(ctx, tipoDocumento, dni)
		if err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Fila %d: Error al procesar - %s", numFila, err.Error()))
			resp.ErrorCount++
			continue
		}
		if existe {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Fila %d: Ya existe un bono para %s %s", numFila, tipoDocumento, dni))
			resp.ErrorCount++
			continue
		}

		ticket := generarTicket()
		bono := &model.Bono{
			ClientName:     cliente,
			TicketNumber:   &ticket,
			TipoBonoID:     tipoBonoID,
			DocumentNumber: dni,
			DocumentType:   tipoDocumento,
			PhoneNumber:    telefono,
			// La importación siempre crea bonos activos, ignore lo que diga la hoja.
			Status:       model.BonoActivo,
			Observations: observaciones,
		}
		if err := s.bonos.Create(ctx, bono); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Fila %d: Error al procesar - %s", numFila, err.Error()))
			resp.ErrorCount++
			continue
		}

		resp.Bonos = append(resp.Bonos, *bonoToResponse(bono))
		resp.ProcessedCount++
	}

	resp.Message = fmt.Sprintf("Se procesaron %d bonos correctamente", resp.ProcessedCount)
	return resp, nil
}

func (s *importacionService) ImportarUsuarios(ctx context.Context, filas []map[string]string) (*dto.ImportacionUsuariosResponse, error) {
	resp := &dto.ImportacionUsuariosResponse{}

	for i, fila := range filas {
		numFila := i + 2

		nombre := strings.TrimSpace(fila["nombre"])
		email := strings.TrimSpace(fila["email"])
		password := strings.TrimSpace(fila["password"])
		rol := strings.TrimSpace(fila["rol"])

		if nombre == "" || email == "" || password == "" || rol == "" {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Fila %d: Faltan campos requeridos (nombre, email, password, rol)", numFila))
			resp.ErrorCount++
			continue
		}
		if rol != "user" && rol != "admin" {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Fila %d: El rol debe ser 'user' o 'admin'", numFila))
			resp.ErrorCount++
			continue
		}
		if !emailRegex.MatchString(email) {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Fila %d: Email inválido (%s)", numFila, email))
			resp.ErrorCount++
			continue
		}

		existe, err := s.usuarios.ExistsByEmail(ctx, email)
		if err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Fila %d: Error al procesar - %s", numFila, err.Error()))
			resp.ErrorCount++
			continue
		}
		if existe {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Fila %d: Ya existe un usuario con el email %s", numFila, email))
			resp.ErrorCount++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
		if err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Fila %d: Error al procesar - %s", numFila, err.Error()))
			resp.ErrorCount++
			continue
		}
		usuario := &model.Usuario{
			Nombre:       nombre,
			Email:        email,
			PasswordHash: string(hash),
			Rol:          rol,
		}
		if err := s.usuarios.Create(ctx, usuario); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("Fila %d: Error al procesar - %s", numFila, err.Error()))
			resp.ErrorCount++
			continue
		}
		resp.ProcessedCount++
	}

	return resp, nil
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// generarTicket builds "TKT-<ms>-<9 chars base36>". Uniqueness is by
// convention (timestamp + random suffix), not verified against the store;
// the unique index on ticket_number catches the residual collision.
func generarTicket() string {
	sufijo := make([]byte, 9)
	for i := range sufijo {
		sufijo[i] = base36[rand.Intn(len(base36))]
	}
	return fmt.Sprintf("TKT-%d-%s", time.Now().UnixMilli(), sufijo)
}
