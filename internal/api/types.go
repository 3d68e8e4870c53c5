package api

// Origin records which discovery source produced a Credential.
type Origin int

const (
	OriginEnvOverride Origin = iota
	OriginAPIKey
	OriginOAuthFile
	OriginOAuthKeychain
)

func (o Origin) String() string {
	switch o {
	case OriginEnvOverride:
		return "env-override"
	case OriginAPIKey:
		return "api-key"
	case OriginOAuthFile:
		return "oauth-file"
	case OriginOAuthKeychain:
		return "oauth-keychain"
	default:
		return "unknown"
	}
}

// Credential is a resolved token. It lives only in memory for one run.
type Credential struct {
	Token     string
	AccountID string // empty when not known
	Origin    Origin
}

// IsOAuth reports whether the token can read usage limits.
func (c Credential) IsOAuth() bool {
	return c.Origin != OriginAPIKey
}

// authFile is the auth.json layout written by the Codex CLI. The same
// shape is sometimes stored as a keychain blob.
type authFile struct {
	Tokens *struct {
		AccessToken string `json:"access_token"`
		AccountID   string `json:"account_id"`
	} `json:"tokens"`
	OpenAIAPIKey string `json:"OPENAI_API_KEY"`
}

// RateWindow is one usage bucket. Nil fields are unknown, not zero.
type RateWindow struct {
	UsedPercent       *float64 `json:"used_percent"`
	ResetAfterSeconds *uint64  `json:"reset_after_seconds"`
}

// Used returns the used percentage, or 0 when unknown.
func (w *RateWindow) Used() float64 {
	if w == nil || w.UsedPercent == nil {
		return 0
	}
	return *w.UsedPercent
}

type rateLimit struct {
	PrimaryWindow   *RateWindow `json:"primary_window"`
	SecondaryWindow *RateWindow `json:"secondary_window"`
	LimitReached    *bool       `json:"limit_reached"`
}

// usageResponse is decoded with encoding/json, so key matching is
// case-insensitive (PLAN_TYPE is accepted as plan_type).
type usageResponse struct {
	PlanType  *string    `json:"plan_type"`
	RateLimit *rateLimit `json:"rate_limit"`
}

// UsageSnapshot is the parsed usage response. Every field is optional.
type UsageSnapshot struct {
	PlanType        *string
	PrimaryWindow   *RateWindow
	SecondaryWindow *RateWindow
	LimitReached    *bool
}

// Plan returns the plan name or "unknown".
func (s *UsageSnapshot) Plan() string {
	if s.PlanType == nil || *s.PlanType == "" {
		return "unknown"
	}
	return *s.PlanType
}

// IsLimitReached treats an absent flag as false.
func (s *UsageSnapshot) IsLimitReached() bool {
	return s.LimitReached != nil && *s.LimitReached
}

func (r *usageResponse) snapshot() *UsageSnapshot {
	s := &UsageSnapshot{PlanType: r.PlanType}
	if r.RateLimit != nil {
		s.PrimaryWindow = r.RateLimit.PrimaryWindow
		s.SecondaryWindow = r.RateLimit.SecondaryWindow
		s.LimitReached = r.RateLimit.LimitReached
	}
	return s
}
