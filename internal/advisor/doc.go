// Package advisor generates natural-language treatment commentary via the
// Anthropic Messages API.
//
// NewClient returns nil when no API key is configured; Advisor.Advise then
// returns ErrCredentialMissing, which callers surface as a distinguished
// "advice unavailable" message rather than an error page. Transport and API
// failures are wrapped and rendered as displayable text. Advice generation
// never blocks or aborts the softening calculation itself.
package advisor
