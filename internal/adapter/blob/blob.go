// Package blob stores recipe images. The Store interface keeps the services
// ignorant of where bytes end up; FSStore keeps them on local disk under a
// configured root and serves them through a public base URL.
package blob

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is the object storage the recipe service uploads images to.
type Store interface {
	// Upload writes the image bytes and returns its durable public URL.
	Upload(ctx context.Context, userID, recipeID uuid.UUID, contentType string, body io.Reader) (string, error)
	// Delete removes the object behind a previously returned URL. Deleting
	// an object that is already gone is not an error.
	Delete(ctx context.Context, url string) error
}

// FSStore implements Store on the local filesystem.
type FSStore struct {
	root    string
	baseURL string
	now     func() time.Time
}

// NewFSStore creates a filesystem-backed store rooted at root. Uploaded
// objects are addressed as baseURL/<object path>.
func NewFSStore(root, baseURL string) *FSStore {
	return &FSStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// Upload writes the image under <userID>/<recipeID>_<timestamp>.<ext>.
// The timestamp keeps re-uploads for the same recipe from colliding.
func (s *FSStore) Upload(ctx context.Context, userID, recipeID uuid.UUID, contentType string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%d%s", recipeID, s.now().UnixNano(), extensionFor(contentType))
	objectPath := path.Join(userID.String(), name)

	dir := filepath.Join(s.root, userID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	dst := filepath.Join(s.root, filepath.FromSlash(objectPath))
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close image file: %w", err)
	}

	return s.baseURL + "/" + objectPath, nil
}

// Delete removes the object a URL points at. URLs outside this store's base
// are rejected; a missing object is ignored.
func (s *FSStore) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	objectPath, err := s.objectPath(url)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(objectPath))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image: %w", err)
	}

	return nil
}

// objectPath maps a public URL back to the store-relative object path.
func (s *FSStore) objectPath(url string) (string, error) {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return "", fmt.Errorf("url %q is not served by this store", url)
	}

	rel = path.Clean(rel)
	if rel == "." || rel == "/" || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("url %q resolves outside the store", url)
	}

	return rel, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
