// Package errors provides the structured error type shared by primekit.
// Every failure carries a machine-readable code, an HTTP status mapping and
// optional details, so the same value can be returned from the library and
// rendered by the HTTP service without translation.
package errors
