// Package memory provides in-memory implementations of the storage ports
// for tests. Nothing is kept across process restarts.
package memory
