// Package store holds session.Store implementations: an in-memory store for
// tests and single-process use, and a SQLite store for persistence across
// restarts.
package store
