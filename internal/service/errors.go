package service

import "errors"

// Errores de negocio compartidos entre servicios. Los handlers los traducen a
// códigos HTTP con errors.Is; los mensajes son los que ve el cliente.
var (
	ErrCredenciales         = errors.New("credenciales invalidas")
	ErrUsuarioNoEncontrado  = errors.New("usuario no encontrado")
	ErrEmailDuplicado       = errors.New("ya existe un usuario con ese email")
	ErrTipoBonoNoEncontrado = errors.New("tipo de bono no encontrado")
	ErrTipoBonoEnUso        = errors.New("el tipo de bono tiene bonos asignados")
	ErrFechaInvalida        = errors.New("fecha invalida")
	ErrBonoNoEncontrado     = errors.New("bono no encontrado")
	ErrBonoDuplicado        = errors.New("ya existe un bono asignado")
	ErrBonoYaCobrado        = errors.New("el bono ya fue cobrado")
	ErrBonoInactivo         = errors.New("el bono esta inactivo")
	ErrBonoNoVigente        = errors.New("el bono aun no esta vigente")
	ErrBonoExpirado         = errors.New("el bono esta expirado")
)
