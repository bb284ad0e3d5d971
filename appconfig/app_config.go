package appconfig

import (
	"context"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-collection-boot/linq"
)

const (
	DefaultServiceURL = "http://localhost:5000"
	DefaultExportDir  = "."
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	ServiceURL        string `env:"REPORT-SERVICE-URL" ini:"service_url"`
	RequestTimeoutSec int    `env:"REQUEST-TIMEOUT-SEC" ini:"request_timeout_sec"`
	MetricsAddr       string `env:"METRICS-ADDR" ini:"metrics_addr"`

	ExportDir   string `env:"EXPORT-DIR" ini:"export_dir"`
	ExportSinks string `env:"EXPORT-SINKS" ini:"export_sinks"`

	S3Bucket string `env:"S3-BUCKET" ini:"s3_bucket"`
	S3Prefix string `env:"S3-PREFIX" ini:"s3_prefix"`

	AzureAccount   string `env:"AZURE-STORAGE-ACCOUNT" ini:"azure_account"`
	AzureKey       string `env:"AZURE-STORAGE-KEY" ini:"azure_key"`
	AzureContainer string `env:"AZURE-BLOB-CONTAINER" ini:"azure_container"`
	AzurePrefix    string `env:"AZURE-BLOB-PREFIX" ini:"azure_prefix"`
}

// Load reads the ini file (env overrides applied by go-api-boot) and fills
// in defaults for anything left empty.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := config.LoadConfig(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func (c *AppConfig) ApplyDefaults() {
	if strings.TrimSpace(c.ServiceURL) == "" {
		c.ServiceURL = DefaultServiceURL
	}
	if strings.TrimSpace(c.ExportDir) == "" {
		c.ExportDir = DefaultExportDir
	}
	if c.RequestTimeoutSec < 0 {
		c.RequestTimeoutSec = 0
	}
}

// RequestTimeout is the per-request timeout for the report service; zero
// disables it.
func (c *AppConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// SinkNames returns the configured export sinks, lower-cased.
func (c *AppConfig) SinkNames(ctx context.Context) ([]string, error) {
	names, err := SplitList(ctx, c.ExportSinks)
	if err != nil {
		return nil, err
	}
	for i, name := range names {
		names[i] = strings.ToLower(name)
	}
	return names, nil
}

// SplitList splits a comma separated value, trimming blanks and dropping
// empty entries.
func SplitList(ctx context.Context, raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}

	return linq.Pipe3(
		linq.FromSlice(ctx, strings.Split(raw, ",")),

		linq.Select(func(item string) string {
			return strings.TrimSpace(item)
		}),

		linq.Where(func(item string) bool {
			return item != ""
		}),

		linq.ToSlice[string](),
	)
}
