package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовые идентификаторы
type UserID = uuid.UUID
type PlantID = uuid.UUID

// Пользователь
type User struct {
	ID        UserID    `json:"id"`
	Login     string    `json:"login"`
	PassHash  []byte    `json:"-"` // никогда не отдаём наружу
	CreatedAt time.Time `json:"created_at"`
}

// Результат распознавания растения по фото.
// Кешируется под ключом plant_id:{userId}:{imageHash} (TTL сутки).
type PlantIdentification struct {
	ID             PlantID   `json:"id"`
	UserID         UserID    `json:"user_id"`
	ImageHash      string    `json:"image_hash"` // sha256 исходного фото (hex)
	CommonName     string    `json:"common_name"`
	ScientificName string    `json:"scientific_name"`
	Confidence     float64   `json:"confidence"`
	Summary        string    `json:"summary"` // короткая строка для ленты истории
	IdentifiedAt   time.Time `json:"identified_at"`

	// Где лежит исходное фото (S3/MinIO)
	StorageKey string `json:"-"`
}
