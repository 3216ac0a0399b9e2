// Package repository defines the persistence contracts for request access
// logs.
package repository

// AccessLog is one served request, recorded after the response was written.
type AccessLog struct {
	ID         int64
	ConnID     string
	Peer       string
	Method     string
	Path       string
	Status     int
	Bytes      int
	DurationMs int64
	CreatedAt  int64
}
