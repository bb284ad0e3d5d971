package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SaiNageswarS/report-boot/schema"
)

// LocalSink writes artifacts into a directory, replacing any previous
// export of the same format.
type LocalSink struct {
	dir string
}

func NewLocalSink(dir string) *LocalSink {
	return &LocalSink{dir: dir}
}

func (l *LocalSink) Name() string {
	return "local"
}

func (l *LocalSink) Save(ctx context.Context, artifact *schema.BinaryArtifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if filepath.Base(artifact.Name) != artifact.Name {
		return "", fmt.Errorf("invalid artifact name %q", artifact.Name)
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	target := filepath.Join(l.dir, artifact.Name)
	tmp, err := os.CreateTemp(l.dir, "."+artifact.Name+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(artifact.Data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("move artifact into place: %w", err)
	}

	return target, nil
}
