package service

import (
	"context"
	"testing"
	"time"

	"github.com/victorolivaresat/bono-go/internal/dto"
	"github.com/victorolivaresat/bono-go/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoTipoBonoSvc(t *testing.T) (TipoBonoService, *stubBonoRepo, *stubTipoBonoRepo) {
	t.Helper()
	bonos := newStubBonoRepo()
	tipos := newStubTipoBonoRepo(bonos)
	svc := NewTipoBonoService(tipos, bonos, NewTipoBonoCache(nil))
	return svc, bonos, tipos
}

func TestCrearTipoBono(t *testing.T) {
	svc, _, _ := nuevoTipoBonoSvc(t)

	desc := "Bono por apertura de cuenta"
	resp, err := svc.Crear(context.Background(), dto.CrearTipoBonoRequest{
		Nombre:      "Bono Apertura",
		Descripcion: &desc,
		FechaInicio: "2024-01-01",
		FechaFin:    "2024-12-31",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bono Apertura", resp.Nombre)
	assert.True(t, resp.Activo, "activo por defecto cuando no viene en el request")
	assert.Equal(t, fechaUTC(2024, time.January, 1), resp.FechaInicio)
	assert.Equal(t, fechaUTC(2024, time.December, 31), resp.FechaFin)
	assert.Equal(t, int64(0), resp.BonosAsignados)
}

func TestCrearTipoBonoAceptaRFC3339(t *testing.T) {
	svc, _, _ := nuevoTipoBonoSvc(t)

	resp, err := svc.Crear(context.Background(), dto.CrearTipoBonoRequest{
		Nombre:      "Bono Nocturno",
		FechaInicio: "2024-03-01T00:00:00Z",
		FechaFin:    "2024-03-31T23:59:59Z",
	})
	require.NoError(t, err)
	assert.Equal(t, 2024, resp.FechaInicio.Year())
	assert.Equal(t, time.March, resp.FechaFin.Month())
}

func TestCrearTipoBonoFechaInvalida(t *testing.T) {
	svc, _, _ := nuevoTipoBonoSvc(t)

	_, err := svc.Crear(context.Background(), dto.CrearTipoBonoRequest{
		Nombre:      "Bono Roto",
		FechaInicio: "01/02/2024",
		FechaFin:    "2024-12-31",
	})
	assert.ErrorIs(t, err, ErrFechaInvalida)
}

// Una ventana invertida (fin antes que inicio) se acepta tal cual.
func TestCrearTipoBonoVentanaInvertida(t *testing.T) {
	svc, _, _ := nuevoTipoBonoSvc(t)

	resp, err := svc.Crear(context.Background(), dto.CrearTipoBonoRequest{
		Nombre:      "Bono Invertido",
		FechaInicio: "2024-12-31",
		FechaFin:    "2024-01-01",
	})
	require.NoError(t, err)
	assert.True(t, resp.FechaFin.Before(resp.FechaInicio))
}

func TestActualizarTipoBonoParcial(t *testing.T) {
	svc, _, tipos := nuevoTipoBonoSvc(t)
	tipo := crearTipoDemo(tipos, fechaUTC(2024, time.January, 1), fechaUTC(2024, time.December, 31))
	nombreOriginal := tipo.Nombre

	inactivo := false
	resp, err := svc.Actualizar(context.Background(), tipo.ID, dto.ActualizarTipoBonoRequest{
		Activo: &inactivo,
	})
	require.NoError(t, err)

	assert.False(t, resp.Activo)
	assert.Equal(t, nombreOriginal, resp.Nombre, "los campos ausentes no se tocan")
	assert.Equal(t, fechaUTC(2024, time.January, 1), resp.FechaInicio)
}

func TestActualizarTipoBonoNoEncontrado(t *testing.T) {
	svc, _, _ := nuevoTipoBonoSvc(t)

	nombre := "Nuevo Nombre"
	_, err := svc.Actualizar(context.Background(), uuid.New(), dto.ActualizarTipoBonoRequest{Nombre: &nombre})
	assert.ErrorIs(t, err, ErrTipoBonoNoEncontrado)
}

func TestEliminarTipoBonoEnUso(t *testing.T) {
	svc, bonos, tipos := nuevoTipoBonoSvc(t)
	tipo := crearTipoDemo(tipos, fechaUTC(2024, time.January, 1), fechaUTC(2024, time.December, 31))
	crearBonoDemo(bonos, tipo.ID, model.BonoActivo, "DNI", "12345678")

	err := svc.Eliminar(context.Background(), tipo.ID)
	assert.ErrorIs(t, err, ErrTipoBonoEnUso)

	_, err = tipos.FindByID(context.Background(), tipo.ID)
	assert.NoError(t, err, "el tipo sigue existiendo tras el intento bloqueado")
}

func TestEliminarTipoBonoSinBonos(t *testing.T) {
	svc, _, tipos := nuevoTipoBonoSvc(t)
	tipo := crearTipoDemo(tipos, fechaUTC(2024, time.January, 1), fechaUTC(2024, time.December, 31))

	require.NoError(t, svc.Eliminar(context.Background(), tipo.ID))

	_, err := tipos.FindByID(context.Background(), tipo.ID)
	assert.Error(t, err)
}

func TestEliminarTipoBonoNoEncontrado(t *testing.T) {
	svc, _, _ := nuevoTipoBonoSvc(t)

	err := svc.Eliminar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTipoBonoNoEncontrado)
}

func TestListarTipoBonosConConteo(t *testing.T) {
	svc, bonos, tipos := nuevoTipoBonoSvc(t)
	conBonos := crearTipoDemo(tipos, fechaUTC(2024, time.January, 1), fechaUTC(2024, time.December, 31))
	sinBonos := crearTipoDemo(tipos, fechaUTC(2024, time.January, 1), fechaUTC(2024, time.December, 31))
	crearBonoDemo(bonos, conBonos.ID, model.BonoActivo, "DNI", "11111111")
	crearBonoDemo(bonos, conBonos.ID, model.BonoActivo, "DNI", "22222222")

	resp, err := svc.Listar(context.Background())
	require.NoError(t, err)
	require.Len(t, resp, 2)

	porID := map[string]dto.TipoBonoResponse{}
	for _, r := range resp {
		porID[r.ID] = r
	}
	assert.Equal(t, int64(2), porID[conBonos.ID.String()].BonosAsignados)
	assert.Equal(t, int64(0), porID[sinBonos.ID.String()].BonosAsignados)
}
