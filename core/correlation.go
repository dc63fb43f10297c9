package core

import "github.com/google/uuid"

// NewCorrelationID generates a short unique identifier for tracing one
// conversion run across logs and the history store. Eight hex characters is
// plenty for correlating a single process's runs while staying readable in
// console output.
func NewCorrelationID() string {
	return uuid.New().String()[:8]
}
