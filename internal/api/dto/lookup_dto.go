package dto

import "time"

// TimestampLayout parses timestamps written by FormatTimestamp; time.Parse
// accepts the optional fractional seconds.
const TimestampLayout = "2006-01-02T15:04:05"

const timestampMicrosLayout = "2006-01-02T15:04:05.000000"

// FormatTimestamp renders t in UTC as ISO-8601 without a zone suffix.
// Microseconds are written as six digits and left out entirely when zero.
func FormatTimestamp(t time.Time) string {
	t = t.UTC().Truncate(time.Microsecond)
	if t.Nanosecond() == 0 {
		return t.Format(TimestampLayout)
	}
	return t.Format(timestampMicrosLayout)
}

// LookupRequest payload for POST /lookup.
type LookupRequest struct {
	UserID string `json:"user_id"`
}

// LookupResponse is returned for a resolved user id.
type LookupResponse struct {
	VisitorID string `json:"visitor_id"`
	UserID    string `json:"user_id"`
	FoundAt   string `json:"found_at"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}
