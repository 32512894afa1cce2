// Package datasource opens the dataset a vinrisk record store is built from:
// a local CSV file, a CSV object in S3 or GCS, or a Postgres table.
package datasource

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/vinrisk/vinrisk/pkg/config"
	"github.com/vinrisk/vinrisk/pkg/inventory"
	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// Source is an inventory.Source that may hold a client or connection.
// Callers close it once rows have been read.
type Source interface {
	inventory.Source
	io.Closer
}

// Open picks a Source for uri:
//
//	/path/to/file.csv, file:///path  local CSV
//	s3://bucket/key                  CSV object in S3 or an S3-compatible store
//	gs://bucket/object               CSV object in Google Cloud Storage
//	postgres://... postgresql://...  table read through database/sql
func Open(ctx context.Context, uri string, cfg config.DatasetConfig) (Source, error) {
	if uri == "" {
		return nil, fmt.Errorf("empty dataset source")
	}
	if !strings.Contains(uri, "://") {
		return NewLocalCSV(uri), nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse dataset source %q: %w", uri, err)
	}

	switch u.Scheme {
	case "file":
		return NewLocalCSV(u.Path), nil
	case "s3":
		bucket, key, err := splitObjectURL(u)
		if err != nil {
			return nil, err
		}
		src, err := NewS3CSV(ctx, S3Options{
			Bucket:       bucket,
			Key:          key,
			Region:       cfg.S3.Region,
			Endpoint:     cfg.S3.Endpoint,
			AccessKey:    cfg.S3.AccessKey,
			SecretKey:    cfg.S3.SecretKey,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
		if err != nil {
			return nil, err
		}
		return src, nil
	case "gs":
		bucket, object, err := splitObjectURL(u)
		if err != nil {
			return nil, err
		}
		src, err := NewGCSCSV(ctx, bucket, object)
		if err != nil {
			return nil, err
		}
		return src, nil
	case "postgres", "postgresql":
		columns := cfg.Columns
		if columns == (inventory.Columns{}) {
			columns = inventory.DefaultColumns()
		}
		src, err := NewPostgresTable(uri, cfg.Table, columns)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unsupported dataset source scheme %q", u.Scheme)
	}
}

func splitObjectURL(u *url.URL) (bucket, key string, err error) {
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("dataset source %s must name a bucket and an object", u.Redacted())
	}
	return bucket, key, nil
}

// unavailable wraps err as a *vehicle.DatasetUnavailableError for src.
func unavailable(src string, err error) error {
	return &vehicle.DatasetUnavailableError{Source: src, Err: err}
}
