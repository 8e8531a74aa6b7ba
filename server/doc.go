// Package server provides the HTTP surface of the service: a Gin-backed
// server with recovery, request-id, CORS, body-size, rate-limit, and
// request-logging middleware, plus the transcription routes.
//
// Responses use a uniform envelope: successes carry "ok": true alongside
// their payload, failures carry "ok": false and a structured error body.
package server
