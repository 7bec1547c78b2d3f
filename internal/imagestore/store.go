// Package imagestore persists generated images and lists them for the
// gallery API. The worker writes results here; the gateway reads. Durable
// image hosting is an external collaborator — this is the local-directory
// rendition of its interface.
package imagestore

import (
	"time"

	"github.com/google/uuid"
)

// Image describes one stored result for gallery listings.
type Image struct {
	Ref       string
	SizeBytes int64
	CreatedAt time.Time
}

// Store saves result bytes under a job id and lists stored images newest
// first.
type Store interface {
	// Save persists the image and returns its result reference.
	Save(jobID uuid.UUID, data []byte) (string, error)

	// List returns one page of stored images, newest first, plus the total
	// count. Page numbering starts at 1.
	List(page, limit int) ([]Image, int, error)
}
