package logger

import (
	"go.uber.org/zap"
)

// New creates a zap logger configured for the given application environment.
// "development" gets a human-readable console logger; everything else gets
// production JSON output.
func New(appEnv string) (*zap.Logger, error) {
	if appEnv == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewNamed creates a logger for the given environment with a service name
// attached to every entry.
func NewNamed(appEnv, service string) (*zap.Logger, error) {
	log, err := New(appEnv)
	if err != nil {
		return nil, err
	}
	return log.Named(service), nil
}
