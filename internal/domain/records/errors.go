package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput agrupa todos los ValidationError (errors.Is).
var ErrInvalidInput = errors.New("invalid input")

// ValidationError se detecta localmente; nunca llega al CRM.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// RemoteError es cualquier falla hablando con el CRM: status no-2xx,
// red/timeout o JSON inválido. No se reintenta.
type RemoteError struct {
	Source     string // p.ej. "HubSpot"
	StatusCode int    // 0 si no hubo respuesta HTTP
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	return e.Display()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Display arma el mensaje que se muestra en la vista:
// con status y body => "<Source> API Error <status>: <body>",
// si no => "Request failed: <mensaje del error>".
func (e *RemoteError) Display() string {
	if e.StatusCode != 0 && strings.TrimSpace(e.Body) != "" {
		src := e.Source
		if src == "" {
			src = "Remote"
		}
		return fmt.Sprintf("%s API Error %d: %s", src, e.StatusCode, compactJSON(e.Body))
	}
	if e.Err != nil {
		return "Request failed: " + e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
	}
	return "Request failed"
}

// AsRemoteError normaliza cualquier error a *RemoteError.
func AsRemoteError(err error) *RemoteError {
	if err == nil {
		return nil
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return re
	}
	return &RemoteError{Err: err}
}

func compactJSON(s string) string {
	s = strings.TrimSpace(s)
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
