package model

import "time"

// Blob is one stored object of the gorm backed blob store.
// Name is the full key, e.g. uploaded-pages/<page name>.
type Blob struct {
	Name       string `gorm:"primaryKey;not null"`
	Data       []byte
	Generation int64 `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Blob) TableName() string {
	return "blobs"
}
