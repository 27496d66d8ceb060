// Package transform puts the Base64, URL and JWT codecs behind a single
// Engine interface and defines the boundary every utility page calls
// through: Run never fails, it returns a Result tagged empty, success or
// failure.
package transform
