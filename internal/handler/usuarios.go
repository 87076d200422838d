package handler

import (
	"io"
	"net/http"

	"github.com/victorolivaresat/bono-go/internal/apierror"
	"github.com/victorolivaresat/bono-go/internal/dto"
	"github.com/victorolivaresat/bono-go/internal/infra"
	"github.com/victorolivaresat/bono-go/internal/service"

	"github.com/gin-gonic/gin"
)

type UsuariosHandler struct {
	svc         service.AuthService
	importacion service.ImportacionService
}

func NewUsuariosHandler(svc service.AuthService, importacion service.ImportacionService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc, importacion: importacion}
}

func (h *UsuariosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarUsuarios(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsuariosHandler) Crear(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearUsuario(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UsuariosHandler) Importar(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se ha proporcionado ningún archivo"))
		return
	}
	defer file.Close()

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

	resp, err := h.importacion.ImportarUsuarios(c.Request.Context(), filas)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsuariosHandler) Plantilla(c *gin.Context) {
	data, err := infra.PlantillaUsuarios()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=plantilla_usuarios.xlsx")
	c.Data(http.StatusOK, infra.XLSXContentType, data)
}
