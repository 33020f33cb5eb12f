package storage

import (
	"beedu/beedu/config"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient reads the prebuilt index artifact out of object storage.
// The artifact is produced and uploaded by the offline index build, this
// side only ever fetches it.
type MinIOClient struct {
	client *minio.Client
	bucket string
	object string
}

func NewMinIOClient(cfg config.Config) (*MinIOClient, error) {
	// Use insecure for local (no HTTPS)
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: false,
		},
	)
	if err != nil {
		return nil, err
	}
	return &MinIOClient{client: client, bucket: cfg.MinIOBucket, object: cfg.IndexObject}, nil
}

// FetchIndex downloads the artifact bytes. It satisfies vectorstore.Source,
// so load failures surface lazily on the first query and are retried.
func (m *MinIOClient) FetchIndex(ctx context.Context) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, m.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}
