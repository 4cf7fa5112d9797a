package mist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is where credentials are looked for when -e is not given.
const DefaultEnvFile = "~/.mist_env"

// Credentials holds what is needed to authenticate against a Mist cloud.
// Either APIToken or Username+Password must be set.
type Credentials struct {
	// Host is the API host, e.g. "api.mist.com" or "api.eu.mist.com".
	// A full URL is also accepted.
	Host     string
	APIToken string
	Username string
	Password string
}

// BaseURL normalizes Host into a base URL without a trailing slash.
func (c *Credentials) BaseURL() string {
	host := strings.TrimSuffix(c.Host, "/")
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host
}

// HasToken reports whether token auth is available.
func (c *Credentials) HasToken() bool {
	return c.APIToken != ""
}

// Validate checks that the credentials are usable for a login attempt.
// A password may still be missing; the session layer prompts for it.
func (c *Credentials) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("no MIST_HOST defined")
	}
	if c.APIToken == "" && c.Username == "" {
		return fmt.Errorf("no MIST_APITOKEN or MIST_USER defined")
	}
	return nil
}

// LoadCredentials reads a mist env file (dotenv KEY=VALUE format) and
// returns the credentials it defines. A leading "~/" in path is expanded.
// A missing file is an error: these tools cannot run unauthenticated.
func LoadCredentials(path string) (*Credentials, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	env, err := godotenv.Read(expanded)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	creds := &Credentials{
		Host:     env["MIST_HOST"],
		APIToken: env["MIST_APITOKEN"],
		Username: env["MIST_USER"],
		Password: env["MIST_PASSWORD"],
	}
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("env file %s: %w", path, err)
	}
	return creds, nil
}

// ExpandPath resolves a leading "~/" against the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
