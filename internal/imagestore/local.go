package imagestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

// refPrefix is the URL path the gateway serves the image directory under.
const refPrefix = "/images/"

// LocalStore writes JPEG results into a directory on disk.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory images are written to.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Save(jobID uuid.UUID, data []byte) (string, error) {
	name := jobID.String() + ".jpg"
	path := filepath.Join(s.dir, name)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("publishing image: %w", err)
	}
	return refPrefix + name, nil
}

func (s *LocalStore) List(page, limit int) ([]Image, int, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(s.dir, "**", "*.jpg"))
	if err != nil {
		return nil, 0, fmt.Errorf("scanning image dir: %w", err)
	}

	images := make([]Image, 0, len(matches))
	for _, name := range matches {
		info, err := os.Lstat(name)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		rel, err := filepath.Rel(s.dir, name)
		if err != nil {
			continue
		}
		images = append(images, Image{
			Ref:       refPrefix + filepath.ToSlash(rel),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime().UTC(),
		})
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].CreatedAt.After(images[j].CreatedAt)
	})

	total := len(images)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	return images[start:end], total, nil
}
