package s3

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Liv-glitch/Farm-Mall-sub000/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

// Storage хранит фотографии растений. Ключ — контент-хэш,
// одинаковые фото не дублируются.
type Storage struct {
	cl     *minio.Client
	bucket string
	logger *log.Logger
}

// Ensure: Storage implements domain.ImageStorage
var _ domain.ImageStorage = (*Storage)(nil)

func New(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, logger: logger}, nil
}

// PutImage считает sha256 и кладёт фото под "plants/sha256/<hex>".
// Фото уже в памяти (лимит на размер держит HTTP-слой), поэтому хэш
// считаем до загрузки и промежуточный ключ не нужен.
func (s *Storage) PutImage(ctx context.Context, data []byte, mime string) (domain.ImagePutResult, error) {
	sum := sha256.Sum256(data)
	hash := fmt.Sprintf("%x", sum)
	key := "plants/sha256/" + hash

	_, err := s.cl.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mime,
	})
	if err != nil {
		s.logger.Printf("put %q failed: %v", key, err)
		return domain.ImagePutResult{}, err
	}
	s.logger.Printf("put %q ok (%d bytes)", key, len(data))
	return domain.ImagePutResult{StorageKey: key, ImageHash: hash, Size: int64(len(data))}, nil
}

// GetImage открывает поток для чтения фото.
func (s *Storage) GetImage(ctx context.Context, storageKey string) (io.ReadCloser, string, error) {
	info, err := s.cl.StatObject(ctx, s.bucket, storageKey, minio.StatObjectOptions{})
	if err != nil {
		return nil, "", err
	}
	obj, err := s.cl.GetObject(ctx, s.bucket, storageKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}
	return obj, info.ContentType, nil
}

func (s *Storage) Delete(ctx context.Context, storageKey string) error {
	return s.cl.RemoveObject(ctx, s.bucket, storageKey, minio.RemoveObjectOptions{})
}

func (s *Storage) Ping(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		s.logger.Printf("ping failed: %v", err)
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}
	return nil
}
