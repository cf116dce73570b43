package pkg

import "github.com/google/uuid"

// GenerateNewSessionID - returns a random id for a presentation session.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
