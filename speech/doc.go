// Package speech implements the client for the remote speech-batch service:
// it submits asynchronous diarized-transcription jobs over staged audio,
// reads job status, and fetches and normalizes finished transcripts.
//
// The client is stateless and request-scoped. There is no internal poll
// loop, no background goroutine and no retry: the caller invokes Status on
// its own cadence until a terminal state, then calls Result once. All
// operations are safe for concurrent use across job ids.
//
// The remote service's encodings are loosely specified; both job-id
// extraction (header, several body fields, bare id) and transcript offsets
// (100ns ticks vs ISO-8601 durations) are handled as ordered lists of
// strategies, first match wins.
package speech
