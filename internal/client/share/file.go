// Package share delivers generated receipts: to a local directory, or to an
// S3-compatible bucket exposed through a presigned download link.
package share

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/filex"
)

// FileSharer writes documents into a directory.
type FileSharer struct {
	Dir string
}

func NewFileSharer(dir string) *FileSharer {
	return &FileSharer{Dir: dir}
}

// Share writes content to Dir/name and returns the absolute path.
func (f *FileSharer) Share(_ context.Context, name string, content []byte) (string, error) {
	path, err := filex.WriteFile(f.Dir, name, content)
	if err != nil {
		return "", fmt.Errorf("save receipt: %w", err)
	}
	return path, nil
}
