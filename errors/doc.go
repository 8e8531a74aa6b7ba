// Package errors provides unified error handling for the meetscribe service.
// It implements structured error types with machine-readable codes, HTTP
// status mapping, and retryable detection.
//
// The batch-transcription client distinguishes four failure families:
//
//   - CONFIGURATION_ERROR: a required credential or setting is missing; raised
//     before any network call.
//   - UPSTREAM_REQUEST_ERROR: the remote service answered with a non-2xx
//     status; the upstream's own error body is carried in the details.
//   - CONTRACT_VIOLATION: the remote service answered 2xx but the expected
//     response shape is absent (e.g. no recoverable job id after submit).
//   - DOWNLOAD_PARSE_ERROR: result content was fetched but could not be
//     parsed as the expected structured format.
//
// All of these are terminal for the call in which they occur; no package in
// this repository retries automatically.
package errors
