// Package httpclient provides a thin, configurable HTTP client used for all
// calls to the remote speech-batch service.
//
// The client deliberately performs no retries, circuit breaking or rate
// limiting: every operation either completes or fails immediately, and retry
// cadence is owned by the caller. Non-2xx responses are returned to the
// caller as ordinary responses so the caller can surface the upstream's own
// error body; only transport-level failures (connection, timeout) produce an
// error.
package httpclient
