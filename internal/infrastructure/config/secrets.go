package config

import (
	"fmt"
	"os"
	"strings"
)

// secretFile maps a sensitive field to the environment variable naming a
// file that holds its value, the way container orchestrators mount secrets.
type secretFile struct {
	env    string
	target *string
}

func secretFiles(c *Config) []secretFile {
	return []secretFile{
		{env: "KITCHEN_DATABASE_PASSWORD_FILE", target: &c.Database.Password},
		{env: "KITCHEN_REDIS_PASSWORD_FILE", target: &c.Redis.Password},
		{env: "KITCHEN_AUTH_JWT_SECRET_FILE", target: &c.Auth.JWTSecret},
	}
}

// applySecretFiles overrides sensitive fields with the contents of the
// files named by their *_FILE environment variables.
func applySecretFiles(c *Config) error {
	for _, sf := range secretFiles(c) {
		path := os.Getenv(sf.env)
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read secret from %s: %w", sf.env, err)
		}

		value := strings.TrimSpace(string(data))
		if value == "" {
			return fmt.Errorf("secret file named by %s is empty", sf.env)
		}
		*sf.target = value
	}
	return nil
}
