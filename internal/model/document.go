package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentStatus represents the ingestion status of a document.
type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "pending"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusCompleted  DocumentStatus = "completed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// ParseDocumentStatus normalizes a status string against the closed status
// set. Statuses reported by the ingestion side arrive as free-form strings.
func ParseDocumentStatus(s string) (DocumentStatus, bool) {
	switch DocumentStatus(strings.ToLower(strings.TrimSpace(s))) {
	case DocumentStatusPending:
		return DocumentStatusPending, true
	case DocumentStatusProcessing:
		return DocumentStatusProcessing, true
	case DocumentStatusCompleted:
		return DocumentStatusCompleted, true
	case DocumentStatusFailed:
		return DocumentStatusFailed, true
	}
	return "", false
}

// Document represents an uploaded document and its ingestion state.
type Document struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Title        string         `json:"title" gorm:"size:255;not null"`
	Description  string         `json:"description,omitempty" gorm:"size:1024"`
	FileName     string         `json:"file_name" gorm:"size:255;not null"`
	FilePath     string         `json:"file_path" gorm:"size:512;not null"`
	FileType     string         `json:"file_type" gorm:"size:255;not null"`
	FileSize     int64          `json:"file_size" gorm:"type:bigint;not null"`
	Status       DocumentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	ErrorMessage string         `json:"error_message,omitempty" gorm:"size:1024"`
	UserID       uuid.UUID      `json:"user_id" gorm:"type:char(36);not null;index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
