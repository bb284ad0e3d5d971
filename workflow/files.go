package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/SaiNageswarS/report-boot/schema"
)

// SupportedExtensions are the document types the file picker offers.
var SupportedExtensions = []string{".txt", ".pdf", ".docx", ".json", ".xlsx", ".csv"}

// FileSource yields files chosen by the user. A source is acquired for a
// single selection and not retained afterwards.
type FileSource interface {
	Select(ctx context.Context) ([]schema.UploadedFile, error)
}

// DiskFiles reads the listed paths from the local file system.
type DiskFiles struct {
	Paths []string
}

func (d DiskFiles) Select(ctx context.Context) ([]schema.UploadedFile, error) {
	files := make([]schema.UploadedFile, 0, len(d.Paths))
	for _, path := range d.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !IsSupportedFile(path) {
			return nil, &schema.ValidationError{
				Op:      "select",
				Message: fmt.Sprintf("unsupported file type %q (supported: %s)", filepath.Base(path), strings.Join(SupportedExtensions, ", ")),
			}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", path, err)
		}
		files = append(files, schema.NewUploadedFile(filepath.Base(path), data))
	}
	return files, nil
}

func IsSupportedFile(path string) bool {
	return slices.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(path)))
}
