package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/driftfs/driftfs/fsys"
	"github.com/driftfs/driftfs/memfs"
	"github.com/driftfs/driftfs/s3"
	"github.com/driftfs/driftfs/swift"
)

// OpenStorage builds the fsys.FS selected by cfg.Driver.
func OpenStorage(ctx context.Context, cfg StorageConfig, log zerolog.Logger) (fsys.FS, error) {
	switch cfg.Driver {
	case "memory":
		return memfs.New(), nil

	case "swift":
		sc := cfg.Swift
		return swift.New(ctx, &swift.Config{
			AuthURL:        sc.AuthURL,
			Username:       sc.Username,
			APIKey:         sc.APIKey,
			Domain:         sc.Domain,
			Tenant:         sc.Tenant,
			Region:         sc.Region,
			Container:      sc.Container,
			Prefix:         sc.Prefix,
			TempURLKey:     sc.TempURLKey,
			ConnectTimeout: time.Duration(sc.ConnectTimeout),
			Timeout:        time.Duration(sc.Timeout),
			Logger:         &log,
		})

	case "s3":
		sc := cfg.S3
		return s3.New(ctx, &s3.Config{
			Endpoint:  sc.Endpoint,
			AccessKey: sc.AccessKey,
			SecretKey: sc.SecretKey,
			UseSSL:    sc.UseSSL,
			Region:    sc.Region,
			Bucket:    sc.Bucket,
			Prefix:    sc.Prefix,
		})

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
