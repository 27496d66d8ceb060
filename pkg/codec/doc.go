// Package codec holds what the individual transform engines share: the
// error taxonomy surfaced to users and the File abstraction for binary
// input.
package codec
