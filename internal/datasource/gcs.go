package datasource

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"

	"github.com/vinrisk/vinrisk/pkg/inventory"
)

// GCSCSV reads a CSV object from Google Cloud Storage.
type GCSCSV struct {
	client *gcs.Client
	bucket string
	object string
}

// NewGCSCSV creates a GCS-backed Source.
// It uses Application Default Credentials (works with Workload Identity, SA keys, gcloud auth).
func NewGCSCSV(ctx context.Context, bucket, object string) (*GCSCSV, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSCSV{client: client, bucket: bucket, object: object}, nil
}

// Describe returns the object URL.
func (s *GCSCSV) Describe() string { return "gs://" + s.bucket + "/" + s.object }

// Rows streams and parses the object.
func (s *GCSCSV) Rows(ctx context.Context) ([]inventory.Row, error) {
	r, err := s.client.Bucket(s.bucket).Object(s.object).NewReader(ctx)
	if err != nil {
		return nil, unavailable(s.Describe(), fmt.Errorf("gcs read %s: %w", s.object, err))
	}
	defer r.Close()

	rows, err := ParseCSV(r)
	if err != nil {
		return nil, unavailable(s.Describe(), err)
	}
	return rows, nil
}

// Close releases the GCS client.
func (s *GCSCSV) Close() error { return s.client.Close() }
