// Package util provides small shared helpers: size-string parsing and
// secret masking for logs.
package util
