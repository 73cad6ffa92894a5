package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/odpi/itinfra/internal/logging"
)

// Recovery turns handler panics into 500 responses and logs them.
func Recovery(logger *logging.Logger) func(http.Handler) http.Handler {
	l := logging.New("recovery", loggerOf(logger))
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(l.Entry),
		handlers.PrintRecoveryStack(true),
	)
}
