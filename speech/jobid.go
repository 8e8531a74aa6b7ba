package speech

import (
	"encoding/json"
	"net/url"
	"strings"

	apperrors "github.com/kbukum/meetscribe/errors"
)

// locationHeaders are checked in order on the submit response before
// falling back to body fields.
var locationHeaders = []string{"Location", "Operation-Location"}

// bodyURLFields are the body fields that may carry the transcription URL,
// tried in order.
var bodyURLFields = []string{"self", "location", "url"}

// extractJobID resolves the transcription id from a submit response. It
// tries location-style headers first, then URL-shaped body fields, and
// finally a bare "id" field. Each strategy that yields a value wins; if
// none do, a contract violation carrying the response shape is returned.
func extractJobID(statusCode int, headers map[string]string, body []byte, contentType string) (string, string, error) {
	for _, h := range locationHeaders {
		if loc := headerValue(headers, h); loc != "" {
			if id := transcriptionIDFromURL(loc); id != "" {
				return id, loc, nil
			}
		}
	}

	var fields map[string]json.RawMessage
	if len(body) > 0 {
		_ = json.Unmarshal(body, &fields)
	}
	if fields != nil {
		if self, ok := fields["links"]; ok {
			var links struct {
				Self string `json:"self"`
			}
			if json.Unmarshal(self, &links) == nil && links.Self != "" {
				if id := transcriptionIDFromURL(links.Self); id != "" {
					return id, links.Self, nil
				}
			}
		}
		for _, f := range bodyURLFields {
			raw, ok := fields[f]
			if !ok {
				continue
			}
			var u string
			if json.Unmarshal(raw, &u) != nil || u == "" {
				continue
			}
			if id := transcriptionIDFromURL(u); id != "" {
				return id, u, nil
			}
		}
		if raw, ok := fields["id"]; ok {
			if id := scalarString(raw); id != "" {
				return id, "", nil
			}
		}
	}

	err := apperrors.ContractViolation("submit", "response carries no transcription id").
		WithDetail("upstream_status", statusCode).
		WithDetail("location_header", headerValue(headers, "Location")).
		WithDetail("content_type", contentType)
	if fields != nil {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		err = err.WithDetail("body_keys", keys)
	}
	return "", "", err
}

// transcriptionIDFromURL extracts the trailing path segment of a URL whose
// path contains a ".../transcriptions/{id}" shape. Returns "" when the
// value does not parse or has no such segment.
func transcriptionIDFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Path == "" {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(parts) - 2; i >= 0; i-- {
		if strings.EqualFold(parts[i], "transcriptions") && parts[i+1] != "" {
			return parts[i+1]
		}
	}
	return ""
}

// scalarString renders a JSON string or number token as a string.
func scalarString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// headerValue looks a header up case-insensitively in a flattened header map.
func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
