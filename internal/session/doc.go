// Package session keeps the state of each utility page for the lifetime
// of a browser session. State lives in Badger, in memory unless a
// directory is configured, and expires with the session.
package session
