package handler

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/victorolivaresat/bono-go/internal/apierror"
	"github.com/victorolivaresat/bono-go/internal/dto"
	"github.com/victorolivaresat/bono-go/internal/infra"
	"github.com/victorolivaresat/bono-go/internal/middleware"
	"github.com/victorolivaresat/bono-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BonosHandler struct {
	svc         service.BonoService
	validacion  service.ValidacionService
	importacion service.ImportacionService
}

func NewBonosHandler(svc service.BonoService, validacion service.ValidacionService, importacion service.ImportacionService) *BonosHandler {
	return &BonosHandler{svc: svc, validacion: validacion, importacion: importacion}
}

func (h *BonosHandler) Listar(c *gin.Context) {
	var filter dto.BonoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Filtro invalido"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BonosHandler) Crear(c *gin.Context) {
	var req dto.CrearBonoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BonosHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BonosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarBonoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BonosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bono eliminado correctamente"})
}

// Buscar returns the newest bono for a (documentType, documentNumber) pair.
func (h *BonosHandler) Buscar(c *gin.Context) {
	documentType := c.Query("documentType")
	documentNumber := c.Query("documentNumber")
	if documentType == "" || documentNumber == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Tipo de documento y número son requeridos"))
		return
	}
	resp, err := h.validacion.BuscarPorDocumento(c.Request.Context(), documentType, documentNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Validar redeems a bono, recording the authenticated user as redeemer.
func (h *BonosHandler) Validar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ValidarBonoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("No autorizado"))
		return
	}

	resp, err := h.validacion.Validar(c.Request.Context(), id, req, usuarioID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Importar receives a multipart form with "file" (.xlsx/.xls/.csv) and
// "tipoBonoId", and creates one bono per row. Row failures never abort the
// batch; they come back listed in the response.
func (h *BonosHandler) Importar(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se proporcionó ningún archivo"))
		return
	}
	defer file.Close()

	tipoBonoID, err := uuid.Parse(c.PostForm("tipoBonoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Debe seleccionar un tipo de bono"))
		return
	}

	if !formatoSoportado(header.Filename) {
		c.JSON(http.StatusBadRequest, apierror.New("El archivo debe ser un Excel (.xlsx o .xls) o CSV"))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return
	}
	filas, err := infra.DecodificarTabla(data, header.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Error al procesar el archivo: "+err.Error()))
		return
	}
	if len(filas) == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("El archivo está vacío"))
		return
	}

	resp, err := h.importacion.ImportarBonos(c.Request.Context(), filas, tipoBonoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Plantilla serves the example import spreadsheet.
func (h *BonosHandler) Plantilla(c *gin.Context) {
	data, err := infra.PlantillaBonos()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=plantilla_bonos.xlsx")
	c.Data(http.StatusOK, infra.XLSXContentType, data)
}

func formatoSoportado(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".xlsx") ||
		strings.HasSuffix(lower, ".xls") ||
		strings.HasSuffix(lower, ".csv")
}
