package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvAccessToken = "CODEX_ACCESS_TOKEN"
	EnvAccountID   = "CODEX_ACCOUNT_ID"
	EnvAPIKey      = "OPENAI_API_KEY"
)

// Source is one step of the credential discovery chain. Load returns an
// error wrapping errMiss when the source simply has nothing to offer.
type Source interface {
	Name() string
	Load() (Credential, error)
}

// Resolver walks its sources in order and returns the first credential found.
type Resolver struct {
	Sources []Source
	Logger  *slog.Logger
}

// NewResolver returns the default chain:
//  1. CODEX_ACCESS_TOKEN env var (with optional CODEX_ACCOUNT_ID)
//  2. OPENAI_API_KEY env var
//  3. ~/.codex/auth.json
//  4. ~/.config/codex/auth.json
//  5. OS secret store, one lookup per service alias
func NewResolver(store SecretStore, services []string, logger *slog.Logger) *Resolver {
	primary := FileSource{Display: "~/.codex/auth.json"}
	secondary := FileSource{Display: "~/.config/codex/auth.json"}
	if home, err := os.UserHomeDir(); err == nil {
		primary.Path = filepath.Join(home, ".codex", "auth.json")
		secondary.Path = filepath.Join(home, ".config", "codex", "auth.json")
	}
	return &Resolver{
		Sources: []Source{
			EnvTokenSource{},
			EnvAPIKeySource{},
			primary,
			secondary,
			KeychainSource{Store: store, Services: services},
		},
		Logger: logger,
	}
}

func (r *Resolver) Resolve() (Credential, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tried := make([]string, 0, len(r.Sources))
	for _, src := range r.Sources {
		tried = append(tried, src.Name())
		cred, err := src.Load()
		if err != nil {
			logger.Debug("credential source missed", "source", src.Name(), "err", err)
			continue
		}
		if strings.TrimSpace(cred.Token) == "" {
			logger.Debug("credential source returned blank token", "source", src.Name())
			continue
		}
		logger.Debug("credential resolved", "source", src.Name(), "origin", cred.Origin)
		return cred, nil
	}
	return Credential{}, &NoCredentialError{Tried: tried}
}

type EnvTokenSource struct{}

func (EnvTokenSource) Name() string { return EnvAccessToken }

func (EnvTokenSource) Load() (Credential, error) {
	token := strings.TrimSpace(os.Getenv(EnvAccessToken))
	if token == "" {
		return Credential{}, fmt.Errorf("%s: %w", EnvAccessToken, errMiss)
	}
	return Credential{
		Token:     token,
		AccountID: strings.TrimSpace(os.Getenv(EnvAccountID)),
		Origin:    OriginEnvOverride,
	}, nil
}

type EnvAPIKeySource struct{}

func (EnvAPIKeySource) Name() string { return EnvAPIKey }

func (EnvAPIKeySource) Load() (Credential, error) {
	key := strings.TrimSpace(os.Getenv(EnvAPIKey))
	if key == "" {
		return Credential{}, fmt.Errorf("%s: %w", EnvAPIKey, errMiss)
	}
	return Credential{Token: key, Origin: OriginAPIKey}, nil
}

// FileSource reads an auth.json. Read and parse failures are misses.
type FileSource struct {
	Path    string
	Display string
}

func (s FileSource) Name() string {
	if s.Display != "" {
		return s.Display
	}
	return s.Path
}

func (s FileSource) Load() (Credential, error) {
	if s.Path == "" {
		return Credential{}, fmt.Errorf("%s: no home directory: %w", s.Name(), errMiss)
	}
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Credential{}, fmt.Errorf("%s: %w", s.Path, errMiss)
	}
	if err != nil {
		return Credential{}, fmt.Errorf("read credentials: %w", err)
	}
	cred, err := parseAuth(data, OriginOAuthFile)
	if err != nil {
		return Credential{}, fmt.Errorf("%s: %w", s.Path, err)
	}
	return cred, nil
}

// parseAuth extracts a credential from an auth.json blob. OAuth tokens win
// over a plain key stored alongside them.
func parseAuth(data []byte, oauthOrigin Origin) (Credential, error) {
	var auth authFile
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &auth); err != nil {
		return Credential{}, fmt.Errorf("parse credentials: %w", err)
	}
	if auth.Tokens != nil {
		if token := strings.TrimSpace(auth.Tokens.AccessToken); token != "" {
			return Credential{
				Token:     token,
				AccountID: strings.TrimSpace(auth.Tokens.AccountID),
				Origin:    oauthOrigin,
			}, nil
		}
	}
	if key := strings.TrimSpace(auth.OpenAIAPIKey); key != "" {
		return Credential{Token: key, Origin: OriginAPIKey}, nil
	}
	return Credential{}, fmt.Errorf("no usable token: %w", errMiss)
}
