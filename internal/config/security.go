package config

import (
	"fmt"
	"os"
)

// minJWTSecretLength enforces a 256-bit signing key.
const minJWTSecretLength = 32

// weakJWTSecrets are common placeholder values that must never sign tokens.
var weakJWTSecrets = []string{"secret", "password", "test", "admin", "default"}

// LoadJWTSecret reads and validates the JWT_SECRET environment variable.
// The server must refuse to start with a missing or weak secret.
func LoadJWTSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if len(secret) < minJWTSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters (256 bits)", minJWTSecretLength)
	}
	for _, weak := range weakJWTSecrets {
		if secret == weak || secret == weak+"123" {
			return nil, fmt.Errorf("JWT_SECRET must not be a common weak value")
		}
	}
	return []byte(secret), nil
}
