package bazarr

import (
	"errors"
	"os"
	"strings"
)

// Environment variables the credential resolver reads. The names match
// what Bazarr's own tooling conventionally uses.
const (
	EnvAPIKey  = "BAZARR_API_KEY"
	EnvBaseURL = "BAZARR_BASE_URL"
)

type CredentialSource string

const (
	CredentialSourceEnv    CredentialSource = "env"
	CredentialSourceConfig CredentialSource = "config"
)

// CredentialSources records where each resolved value came from, since
// the key and the base address may resolve from different places.
type CredentialSources struct {
	APIKey  CredentialSource
	BaseURL CredentialSource
}

// Credentials hold everything needed to open the authenticated channel.
type Credentials struct {
	APIKey  string
	BaseURL string
}

// ResolveCredentials resolves the API key and base address.
//
// Precedence, per value:
//  1. BAZARR_API_KEY / BAZARR_BASE_URL env vars
//  2. provided (config file)
//
// Missing either value is the one fatal startup condition: the returned
// error carries a descriptive message and the pipeline must not start.
// The key is never printed.
func ResolveCredentials(provided Credentials) (Credentials, CredentialSources, error) {
	var sources CredentialSources

	key := strings.TrimSpace(os.Getenv(EnvAPIKey))
	sources.APIKey = CredentialSourceEnv
	if key == "" {
		key = strings.TrimSpace(provided.APIKey)
		sources.APIKey = CredentialSourceConfig
	}

	base := strings.TrimSpace(os.Getenv(EnvBaseURL))
	sources.BaseURL = CredentialSourceEnv
	if base == "" {
		base = strings.TrimSpace(provided.BaseURL)
		sources.BaseURL = CredentialSourceConfig
	}

	switch {
	case key == "" && base == "":
		return Credentials{}, CredentialSources{}, errors.New("BAZARR_API_KEY and BAZARR_BASE_URL must be set (environment or config file)")
	case key == "":
		return Credentials{}, CredentialSources{}, errors.New("BAZARR_API_KEY must be set (environment or config file)")
	case base == "":
		return Credentials{}, CredentialSources{}, errors.New("BAZARR_BASE_URL must be set (environment or config file)")
	}

	return Credentials{APIKey: key, BaseURL: base}, sources, nil
}
