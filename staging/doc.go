// Package staging uploads local audio files to object storage and issues
// short-lived, read-only signed URLs the remote speech service fetches the
// audio from.
//
// Staging is a one-shot operation per transcription request: exactly one
// object is written, the signed URL becomes unusable after its expiry, and
// cleanup of the original local file remains the caller's responsibility.
package staging
