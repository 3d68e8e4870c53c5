package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tnunamak/codexmeter/internal/api"
)

type stubResolver struct {
	cred api.Credential
	err  error
}

func (s stubResolver) Resolve() (api.Credential, error) { return s.cred, s.err }

type stubFetcher struct {
	snap  *api.UsageSnapshot
	err   error
	calls int
}

func (s *stubFetcher) Fetch(ctx context.Context, cred api.Credential) (*api.UsageSnapshot, error) {
	s.calls++
	return s.snap, s.err
}

func TestStatus_plain(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{
		Resolver:    stubResolver{cred: api.Credential{Token: "tok"}},
		Fetcher:     &stubFetcher{snap: &api.UsageSnapshot{PlanType: str("pro")}},
		Stdout:      &out,
		Interactive: true,
	}
	if err := r.Status(context.Background(), ModePlain); err != nil {
		t.Fatalf("Status error: %v", err)
	}
	if strings.Contains(out.String(), "Fetching") {
		t.Errorf("plain mode printed indicator:\n%s", out.String())
	}
	if !strings.HasPrefix(out.String(), "Plan: PRO") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestStatus_fancyIndicatorErased(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{
		Resolver:    stubResolver{cred: api.Credential{Token: "tok"}},
		Fetcher:     &stubFetcher{snap: &api.UsageSnapshot{}},
		Stdout:      &out,
		Interactive: true,
	}
	if err := r.Status(context.Background(), ModeFancy); err != nil {
		t.Fatalf("Status error: %v", err)
	}
	s := out.String()
	i := strings.Index(s, "Fetching usage data")
	j := strings.Index(s, "Codex Usage Limits")
	if i < 0 || j < i {
		t.Fatalf("expected indicator before report:\n%s", s)
	}
	if !strings.Contains(s[i:j], "\r") {
		t.Errorf("indicator was not erased:\n%q", s)
	}
}

func TestStatus_resolveErrorNoReport(t *testing.T) {
	var out bytes.Buffer
	fetcher := &stubFetcher{}
	r := &Runner{
		Resolver: stubResolver{err: &api.NoCredentialError{Tried: []string{"x"}}},
		Fetcher:  fetcher,
		Stdout:   &out,
	}
	err := r.Status(context.Background(), ModeFancy)
	var nc *api.NoCredentialError
	if !errors.As(err, &nc) {
		t.Fatalf("expected NoCredentialError, got %v", err)
	}
	if fetcher.calls != 0 {
		t.Errorf("fetch called after resolve failure")
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestStatus_fetchErrorNoReport(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{
		Resolver:    stubResolver{cred: api.Credential{Token: "tok"}},
		Fetcher:     &stubFetcher{err: &api.UnauthorizedError{Status: 401}},
		Stdout:      &out,
		Interactive: true,
	}
	err := r.Status(context.Background(), ModeFancy)
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if strings.Contains(out.String(), "Codex Usage Limits") {
		t.Errorf("report printed after failure:\n%s", out.String())
	}
}
