package domain

import (
	"context"
	"io"
)

// Хранилище фотографий растений (S3/MinIO)
type ImagePutResult struct {
	StorageKey string
	ImageHash  string // sha256 hex, он же идёт в ключ кеша plant_id:{uid}:{hash}
	Size       int64
}

type ImageStorage interface {
	PutImage(ctx context.Context, data []byte, mime string) (ImagePutResult, error)
	GetImage(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error
	Ping(context.Context) error
}

// Внешний сервис распознавания растений
type PlantAnalyzer interface {
	Identify(ctx context.Context, image []byte) (PlantIdentification, error)
}
