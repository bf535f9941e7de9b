package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	pkgerrors "github.com/pkg/errors"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobStore. flat key -> bytes store holding network cache blobs
type BlobStore interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, body io.ReadSeeker) error
}

type FileBlobStore struct {
	dir string
}

func NewFileBlobStore(dir string) *FileBlobStore {
	return &FileBlobStore{dir: dir}
}

func (fs *FileBlobStore) path(key string) string {
	return filepath.Join(fs.dir, filepath.Base(key))
}

func (fs *FileBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(fs.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "open blob %s", key)
	}
	return f, nil
}

// Put writes to a temporary file first so a crash never leaves a truncated blob behind.
func (fs *FileBlobStore) Put(ctx context.Context, key string, body io.ReadSeeker) error {
	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return pkgerrors.Wrapf(err, "create cache dir %s", fs.dir)
	}
	tmp, err := os.CreateTemp(fs.dir, filepath.Base(key)+".*.tmp")
	if err != nil {
		return pkgerrors.Wrap(err, "create temp blob")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return pkgerrors.Wrapf(err, "write blob %s", key)
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.Wrapf(err, "close blob %s", key)
	}
	return pkgerrors.Wrapf(os.Rename(tmp.Name(), fs.path(key)), "rename blob %s", key)
}

type S3BlobStore struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3BlobStore(ctx context.Context, region, bucket, prefix string) (*S3BlobStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "unable to load SDK config")
	}

	return &S3BlobStore{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (ss *S3BlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := ss.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ss.bucket),
		Key:    aws.String(ss.prefix + key),
	})
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "unable to download %s from S3", key)
	}
	return out.Body, nil
}

func (ss *S3BlobStore) Put(ctx context.Context, key string, body io.ReadSeeker) error {
	_, err := ss.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(ss.bucket),
		Key:    aws.String(ss.prefix + key),
		Body:   body,
	})
	if err != nil {
		return pkgerrors.Wrapf(err, "unable to upload %s to S3", key)
	}
	return nil
}
