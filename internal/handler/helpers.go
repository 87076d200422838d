package handler

import (
	"errors"
	"net/http"

	"github.com/victorolivaresat/bono-go/internal/apierror"
	"github.com/victorolivaresat/bono-go/internal/middleware"
	"github.com/victorolivaresat/bono-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps business errors to HTTP statuses. Anything outside the
// known taxonomy is logged and returned as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBonoNoEncontrado),
		errors.Is(err, service.ErrTipoBonoNoEncontrado),
		errors.Is(err, service.ErrUsuarioNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrBonoDuplicado),
		errors.Is(err, service.ErrEmailDuplicado),
		errors.Is(err, service.ErrFechaInvalida),
		errors.Is(err, service.ErrCredenciales):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrBonoYaCobrado),
		errors.Is(err, service.ErrBonoInactivo),
		errors.Is(err, service.ErrBonoNoVigente),
		errors.Is(err, service.ErrBonoExpirado),
		errors.Is(err, service.ErrTipoBonoEnUso):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("unexpected error")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
