package api

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// DefaultKeychainServices are the service names the Codex CLI has been
// seen to store its session under.
var DefaultKeychainServices = []string{"Codex", "codex", "openai-codex", "Codex CLI"}

// SecretStore looks up a secret by service name.
type SecretStore interface {
	Lookup(service string) (string, error)
}

// CommandRunner runs a command and returns its stdout.
type CommandRunner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// CommandStore queries the platform secret store through its CLI:
// security(1) on macOS, secret-tool(1) on Linux.
type CommandStore struct {
	GOOS string
	Run  CommandRunner
}

func NewCommandStore() *CommandStore {
	return &CommandStore{GOOS: runtime.GOOS, Run: execRunner}
}

func (s *CommandStore) Lookup(service string) (string, error) {
	var name string
	var args []string
	switch s.GOOS {
	case "darwin":
		name, args = "security", []string{"find-generic-password", "-s", service, "-w"}
	case "linux":
		name, args = "secret-tool", []string{"lookup", "service", service}
	default:
		return "", fmt.Errorf("keychain: unsupported on %s: %w", s.GOOS, errMiss)
	}

	run := s.Run
	if run == nil {
		run = execRunner
	}
	out, err := run(name, args...)
	if err != nil {
		return "", fmt.Errorf("keychain: %w", err)
	}
	data := strings.TrimSpace(string(out))
	if data == "" {
		return "", fmt.Errorf("keychain: empty value: %w", errMiss)
	}
	return data, nil
}

// KeychainSource tries each service alias in turn. A stored value may be
// an auth.json blob or a bare access token.
type KeychainSource struct {
	Store    SecretStore
	Services []string
}

func (s KeychainSource) services() []string {
	if len(s.Services) == 0 {
		return DefaultKeychainServices
	}
	return s.Services
}

func (s KeychainSource) Name() string {
	quoted := make([]string, 0, len(s.services()))
	for _, svc := range s.services() {
		quoted = append(quoted, fmt.Sprintf("%q", svc))
	}
	return "OS keychain (services " + strings.Join(quoted, ", ") + ")"
}

func (s KeychainSource) Load() (Credential, error) {
	if s.Store == nil {
		return Credential{}, fmt.Errorf("keychain: no store: %w", errMiss)
	}
	services := s.services()

	var lastErr error
	for _, service := range services {
		raw, err := s.Store.Lookup(service)
		if err != nil {
			lastErr = err
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			lastErr = fmt.Errorf("keychain %q: empty value: %w", service, errMiss)
			continue
		}
		if cred, err := parseAuth([]byte(raw), OriginOAuthKeychain); err == nil {
			return cred, nil
		}
		return Credential{Token: raw, Origin: OriginOAuthKeychain}, nil
	}
	if lastErr == nil {
		lastErr = errMiss
	}
	return Credential{}, fmt.Errorf("keychain services %s: %w", strings.Join(services, ", "), lastErr)
}
