package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"

	"github.com/jsamuelsen/recharge-proxy/internal/domain"
)

// Common regex patterns for sensitive data.
var (
	// JWT pattern: three base64 segments separated by dots
	jwtPattern = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)

	// Bearer token pattern
	bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)

	// Basic auth pattern
	basicAuthPattern = regexp.MustCompile(`(?i)^basic\s+.+$`)

	// Session cookie header values
	sessionCookiePattern = regexp.MustCompile(`(?i)ios_gpt_session=`)
)

// DefaultRedactOptions returns the masq options for secret redaction.
// Account tokens, upstream session cookies and our own session keys never
// reach a log line in clear.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		// recharge payloads
		masq.WithFieldName("json_token"),
		masq.WithFieldName("user_data"),
		masq.WithFieldName("json_data"),
		masq.WithFieldName("token_json"),
		masq.WithFieldName("ios_gpt_session"),
		masq.WithFieldName("upstream_session"),
		masq.WithFieldName("session_key"),
		masq.WithFieldName("set_cookie"),
		masq.WithType[domain.SessionHandle](),

		// Common sensitive field names
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldName("apiKey"),
		masq.WithFieldName("apikey"),
		masq.WithFieldName("api_key"),
		masq.WithFieldName("accessToken"),
		masq.WithFieldName("access_token"),
		masq.WithFieldName("refreshToken"),
		masq.WithFieldName("refresh_token"),
		masq.WithFieldName("credential"),
		masq.WithFieldName("credentials"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("auth"),
		masq.WithFieldName("bearer"),
		masq.WithFieldName("cookie"),
		masq.WithFieldName("session"),
		masq.WithFieldName("privateKey"),
		masq.WithFieldName("private_key"),
		masq.WithFieldName("secretKey"),
		masq.WithFieldName("secret_key"),

		// Field name prefixes for sensitive data
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),

		// Regex patterns for sensitive values
		masq.WithRegex(jwtPattern),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(basicAuthPattern),
		masq.WithRegex(sessionCookiePattern),
	}
}

// NewReplaceAttr creates a ReplaceAttr function for slog.HandlerOptions
// that redacts sensitive data. Extra options extend DefaultRedactOptions.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	allOpts := append(DefaultRedactOptions(), opts...)
	return masq.New(allOpts...)
}
