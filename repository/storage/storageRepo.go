package storagerepo

import (
	"context"
	"io"
	"path"
	"strings"
)

type UploadResult struct {
	URL      string
	PublicID string
}

type Repo interface {
	// UploadImage stores an image under folder and returns its public
	// URL. Folder "" means the configured root folder.
	UploadImage(ctx context.Context, folder, filename string, data io.Reader) (*UploadResult, error)
}

// AllowedImage reports whether filename carries an accepted image
// extension (jpg, jpeg, png).
func AllowedImage(filename string) bool {
	switch strings.ToLower(path.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
