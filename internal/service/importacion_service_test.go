package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/victorolivaresat/bono-go/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func nuevaImportacion(t *testing.T) (ImportacionService, *stubBonoRepo, *stubTipoBonoRepo, *stubUsuarioRepo) {
	t.Helper()
	bonos := newStubBonoRepo()
	tipos := newStubTipoBonoRepo(bonos)
	usuarios := newStubUsuarioRepo()
	svc := NewImportacionService(bonos, tipos, usuarios)
	return svc, bonos, tipos, usuarios
}

func TestImportarBonosFilasValidasEInvalidas(t *testing.T) {
	svc, bonos, tipos, _ := nuevaImportacion(t)
	tipo := crearTipoDemo(tipos, fechaUTC(2024, time.January, 1), fechaUTC(2024, time.December, 31))

	filas := []map[string]string{
		{"cliente": "Juan Pérez", "dni": "11111111", "tipo_documento": "DNI", "telefono": "999111222"},
		{"cliente": "", "dni": "22222222", "tipo_documento": "DNI"},
		{"cliente": "María García", "dni": "33333333", "tipo_documento": "CE", "observaciones": "cliente VIP"},
		{"cliente": "Otro Juan", "dni": "11111111", "tipo_documento": "DNI"},
	}

	resp, err := svc.ImportarBonos(context.Background(), filas, tipo.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.ProcessedCount)
	assert.Equal(t, 2, resp.ErrorCount)
	require.Len(t, resp.Errors, 2)
	// La numeración arranca en 2: la fila 1 de la hoja es el encabezado.
	assert.Equal(t, "Fila 3: Faltan campos requeridos (cliente, dni, tipo_documento)", resp.Errors[0])
	assert.Equal(t, "Fila 5: Ya existe un bono para DNI 11111111", resp.Errors[1])
	assert.Equal(t, "Se procesaron 2 bonos correctamente", resp.Message)
	assert.Len(t, resp.Bonos, 2)
	assert.Len(t, bonos.bonos, 2)
}

func TestImportarBonosValoresPorDefecto(t *testing.T) {
	svc, _, tipos, _ := nuevaImportacion(t)
	tipo := crearTipoDemo(tipos, fechaUTC(2024, time.January, 1), fechaUTC(2024, time.December, 31))

	filas := []map[string]string{
		{"cliente": "  Juan Pérez  ", "dni": " 11111111 ", "tipo_documento": "DNI", "observaciones": "   "},
	}

	resp, err := svc.ImportarBonos(context.Background(), filas, tipo.ID)
	require.NoError(t, err)
	require.Equal(t, 1, resp.ProcessedCount)

	bono := resp.Bonos[0]
	assert.Equal(t, "Juan Pérez", bono.ClientName)
	assert.Equal(t, "11111111", bono.DocumentNumber)
	assert.Equal(t, "Sin teléfono", bono.PhoneNumber)
	assert.Nil(t, bono.Observations)
}

// La hoja no manda el estado: todo bono importado nace activo.
func TestImportarBonosSiempreActivos(t *testing.T) {
	svc, _, tipos, _ := nuevaImportacion(t)
	tipo := crearTipoDemo(tipos, fechaUTC(2024, time.January, 1), fechaUTC(2024, time.December, 31))

	filas := []map[string]string{
		{"cliente": "Juan", "dni": "11111111", "tipo_documento": "DNI", "status": "cobrado"},
	}

	resp, err := svc.ImportarBonos(context.Background(), filas, tipo.ID)
	require.NoError(t, err)
	require.Equal(t, 1, resp.ProcessedCount)
	assert.Equal(t, model.BonoActivo, resp.Bonos[0].Status)
}

func TestImportarBonosGeneraTickets(t *testing.T) {
	svc, _, tipos, _ := nuevaImportacion(t)
	tipo := crearTipoDemo(tipos, fechaUTC(2024, time.January, 1), fechaUTC(2024, time.December, 31))

	filas := []map[string]string{
		{"cliente": "A", "dni": "11111111", "tipo_documento": "DNI"},
		{"cliente": "B", "dni": "22222222", "tipo_documento": "DNI"},
	}

	resp, err := svc.ImportarBonos(context.Background(), filas, tipo.ID)
	require.NoError(t, err)
	require.Equal(t, 2, resp.ProcessedCount)

	vistos := map[string]bool{}
	for _, b := range resp.Bonos {
		require.NotNil(t, b.TicketNumber)
		assert.True(t, strings.HasPrefix(*b.TicketNumber, "TKT-"), "ticket %q sin prefijo TKT-", *b.TicketNumber)
		assert.False(t, vistos[*b.TicketNumber], "ticket repetido %q", *b.TicketNumber)
		vistos[*b.TicketNumber] = true
	}
}

func TestImportarBonosTipoInexistente(t *testing.T) {
	svc, _, _, _ := nuevaImportacion(t)

	_, err := svc.ImportarBonos(context.Background(), []map[string]string{
		{"cliente": "Juan", "dni": "11111111", "tipo_documento": "DNI"},
	}, uuid.New())
	assert.ErrorIs(t, err, ErrTipoBonoNoEncontrado)
}

func TestImportarUsuarios(t *testing.T) {
	svc, _, _, usuarios := nuevaImportacion(t)
	existente := &model.Usuario{Nombre: "Ya Existe", Email: "existente@bonos.com", PasswordHash: "x", Rol: "user"}
	require.NoError(t, usuarios.Create(context.Background(), existente))

	filas := []map[string]string{
		{"nombre": "Ana", "email": "ana@bonos.com", "password": "secreto1", "rol": "user"},
		{"nombre": "Beto", "email": "beto@bonos.com", "password": "secreto2", "rol": "gerente"},
		{"nombre": "Caro", "email": "no-es-email", "password": "secreto3", "rol": "admin"},
		{"nombre": "Dani", "email": "existente@bonos.com", "password": "secreto4", "rol": "user"},
		{"nombre": "", "email": "eli@bonos.com", "password": "secreto5", "rol": "user"},
	}

	resp, err := svc.ImportarUsuarios(context.Background(), filas)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.ProcessedCount)
	assert.Equal(t, 4, resp.ErrorCount)
	require.Len(t, resp.Errors, 4)
	assert.Equal(t, "Fila 3: El rol debe ser 'user' o 'admin'", resp.Errors[0])
	assert.Equal(t, "Fila 4: Email inválido (no-es-email)", resp.Errors[1])
	assert.Equal(t, "Fila 5: Ya existe un usuario con el email existente@bonos.com", resp.Errors[2])
	assert.Equal(t, "Fila 6: Faltan campos requeridos (nombre, email, password, rol)", resp.Errors[3])

	creado, err := usuarios.FindByEmail(context.Background(), "ana@bonos.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", creado.Nombre)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(creado.PasswordHash), []byte("secreto1")))
}
