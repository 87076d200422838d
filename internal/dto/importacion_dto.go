package dto

// Resultado de una importación masiva. El lote siempre termina: las filas
// inválidas quedan registradas en Errors y el resto se procesa igual.

type ImportacionBonosResponse struct {
	Message        string         `json:"message"`
	ProcessedCount int            `json:"processedCount"`
	ErrorCount     int            `json:"errorCount"`
	Errors         []string       `json:"errors,omitempty"`
	Bonos          []BonoResponse `json:"bonos"`
}

type ImportacionUsuariosResponse struct {
	ProcessedCount int      `json:"processedCount"`
	ErrorCount     int      `json:"errorCount"`
	Errors         []string `json:"errors,omitempty"`
}
