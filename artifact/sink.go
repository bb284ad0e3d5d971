package artifact

import (
	"context"
	"fmt"
	"path"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/report-boot/appconfig"
	"github.com/SaiNageswarS/report-boot/schema"
	"go.uber.org/zap"
)

// Sink stores exported report artifacts.
type Sink interface {
	Name() string
	// Save stores the artifact under its own name and returns its location.
	Save(ctx context.Context, artifact *schema.BinaryArtifact) (string, error)
}

// Fanout saves to every sink in order. The first sink is the primary one:
// its failure fails the save. Failures of the remaining sinks are logged.
type Fanout struct {
	sinks []Sink
}

func NewFanout(primary Sink, secondary ...Sink) *Fanout {
	return &Fanout{sinks: append([]Sink{primary}, secondary...)}
}

func (f *Fanout) Names() []string {
	names := make([]string, len(f.sinks))
	for i, s := range f.sinks {
		names[i] = s.Name()
	}
	return names
}

func (f *Fanout) Save(ctx context.Context, artifact *schema.BinaryArtifact) (string, error) {
	location, err := f.sinks[0].Save(ctx, artifact)
	if err != nil {
		return "", fmt.Errorf("%s sink: %w", f.sinks[0].Name(), err)
	}

	for _, s := range f.sinks[1:] {
		extra, err := s.Save(ctx, artifact)
		if err != nil {
			logger.Error("Failed to copy artifact to sink",
				zap.String("sink", s.Name()), zap.String("artifact", artifact.Name), zap.Error(err))
			continue
		}
		logger.Info("Copied artifact to sink", zap.String("sink", s.Name()), zap.String("location", extra))
	}

	return location, nil
}

// LoadFromConfig builds the export fan-out. The local sink is always the
// primary; "s3" and "azure" entries of export_sinks add copies. Sinks that
// fail to initialise are logged and skipped.
func LoadFromConfig(ctx context.Context, cfg *appconfig.AppConfig) (*Fanout, error) {
	names, err := cfg.SinkNames(ctx)
	if err != nil {
		return nil, err
	}

	var extra []Sink
	for _, name := range names {
		var (
			s   Sink
			err error
		)
		switch name {
		case "local":
			continue
		case "s3":
			s, err = NewS3Sink(ctx, cfg.S3Bucket, cfg.S3Prefix)
		case "azure":
			s, err = NewAzureSink(cfg.AzureAccount, cfg.AzureKey, cfg.AzureContainer, cfg.AzurePrefix)
		default:
			err = fmt.Errorf("unknown sink %q", name)
		}
		if err != nil {
			logger.Error("Failed to init export sink", zap.String("sink", name), zap.Error(err))
			continue
		}
		logger.Info("Initialized export sink", zap.String("sink", s.Name()))
		extra = append(extra, s)
	}

	return NewFanout(NewLocalSink(cfg.ExportDir), extra...), nil
}

func keyFor(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
