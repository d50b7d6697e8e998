package llm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrorKind classifies an upstream model failure for retry decisions.
type ErrorKind int

const (
	// KindOther covers failures that are never retried.
	KindOther ErrorKind = iota
	// KindRateLimited marks transient 429/quota pressure; a bounded retry may help.
	KindRateLimited
	// KindDailyQuota marks an exhausted per-day allowance; retrying is pointless.
	KindDailyQuota
	// KindInvalidResponse marks output the provider returned but we could not parse.
	KindInvalidResponse
)

// UpstreamError is a capability-tagged provider failure. Providers classify their
// raw errors exactly once, at the boundary, so callers never re-match strings.
type UpstreamError struct {
	Kind       ErrorKind
	Status     int
	RetryAfter time.Duration
	Msg        string
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("llm upstream: status %d: %s", e.Status, e.Msg)
	}
	return "llm upstream: " + e.Msg
}

var (
	rateLimitPattern  = regexp.MustCompile(`(?i)(too many requests|quota exceeded|rate limit|resource_exhausted|status 429)`)
	dailyQuotaPattern = regexp.MustCompile(`(?i)(per[\s_-]?day|daily)`)
	retryDelayPattern = regexp.MustCompile(`retryDelay"\s*:\s*"([0-9]+(?:\.[0-9]+)?)s"`)
	retryInPattern    = regexp.MustCompile(`(?i)retry in ([0-9]+(?:\.[0-9]+)?)\s*s`)
)

// Classify returns the failure kind and any server-suggested retry delay.
// Typed errors win; message heuristics only cover untagged errors from stubs
// or transport layers.
func Classify(err error) (ErrorKind, time.Duration) {
	if err == nil {
		return KindOther, 0
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Kind, upstream.RetryAfter
	}
	return ClassifyMessage(err.Error())
}

// ClassifyMessage classifies a raw error message. Daily-quota wording overrides
// the rate-limit match because that failure does not clear within a request.
func ClassifyMessage(msg string) (ErrorKind, time.Duration) {
	if !rateLimitPattern.MatchString(msg) {
		return KindOther, 0
	}
	if dailyQuotaPattern.MatchString(msg) {
		return KindDailyQuota, 0
	}
	return KindRateLimited, ParseRetryDelay(msg)
}

// ParseRetryDelay extracts a server-suggested delay from an error message.
// Returns 0 when the message carries none.
func ParseRetryDelay(msg string) time.Duration {
	for _, pattern := range []*regexp.Regexp{retryDelayPattern, retryInPattern} {
		if m := pattern.FindStringSubmatch(msg); len(m) == 2 {
			if secs, err := strconv.ParseFloat(m[1], 64); err == nil && secs > 0 {
				return time.Duration(secs * float64(time.Second))
			}
		}
	}
	return 0
}
