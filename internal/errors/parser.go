package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs a machine code with a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps storage and driver errors onto stable codes with
// user-facing messages. Sensitive driver detail never reaches the client.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Ocurrió un error en el servidor",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations

	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "El recurso referenciado no existe",
		}
	}

	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "Falta un campo obligatorio",
		}
	}

	if strings.Contains(errStrLower, "check constraint") {
		if strings.Contains(errStrLower, "rating") {
			return ErrorInfo{
				Code:    ReviewInvalidRating,
				Message: "La calificación debe estar entre 1 y 5",
			}
		}
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "Los datos enviados no son válidos",
		}
	}

	// Network / connectivity
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "No pudimos conectarnos a un servicio externo. Inténtalo de nuevo más tarde",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Ocurrió un error en el servidor. Inténtalo de nuevo más tarde",
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "Este correo ya está registrado",
		}
	}

	if strings.Contains(errLower, "reviews") {
		return ErrorInfo{
			Code:    ReviewAlreadyExists,
			Message: "Ya escribiste una reseña para este destino",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "El registro ya existe",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "destination"):
		return "No encontramos el destino solicitado"
	case strings.Contains(contextLower, "activity"):
		return "No encontramos la actividad solicitada"
	case strings.Contains(contextLower, "accommodation"):
		return "No encontramos el alojamiento solicitado"
	case strings.Contains(contextLower, "package"):
		return "No encontramos el paquete solicitado"
	case strings.Contains(contextLower, "guide"):
		return "No encontramos el guía solicitado"
	case strings.Contains(contextLower, "review"):
		return "No encontramos la reseña solicitada"
	case strings.Contains(contextLower, "user"):
		return "No encontramos el usuario solicitado"
	case strings.Contains(contextLower, "favorite"), strings.Contains(contextLower, "collection"):
		return "No encontramos el favorito solicitado"
	}

	return "No encontramos el recurso solicitado"
}
