// Package dto define las estructuras de entrada/salida de la capa HTTP.
package dto

// ErrorResponse cuerpo de error uniforme de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse respuesta del healthcheck.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
