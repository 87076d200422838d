package handler

import (
	"net/http"

	"github.com/victorolivaresat/bono-go/internal/apierror"
	"github.com/victorolivaresat/bono-go/internal/dto"
	"github.com/victorolivaresat/bono-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TiposBonosHandler struct{ svc service.TipoBonoService }

func NewTiposBonosHandler(svc service.TipoBonoService) *TiposBonosHandler {
	return &TiposBonosHandler{svc: svc}
}

func (h *TiposBonosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TiposBonosHandler) Crear(c *gin.Context) {
	var req dto.CrearTipoBonoRequest
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

func (h *TiposBonosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarTipoBonoRequest
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

func (h *TiposBonosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tipo de bono eliminado correctamente"})
}
