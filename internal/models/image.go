package models

import "time"

// ContractImage is the metadata row for one stored contract image. The
// file itself lives in the blob store under FileName.
type ContractImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ContractID   string    `gorm:"index;not null;column:contract_id" json:"contract_id"`
	FileName     string    `gorm:"uniqueIndex;not null" json:"file_name"`
	OriginalName string    `json:"original_name"`
	Checksum     string    `gorm:"not null" json:"checksum"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	SizeBytes    int64     `json:"size_bytes"`
	UploaderID   uint      `gorm:"not null;column:uploader_user_id" json:"uploader_user_id"`
	UploaderRole UserRole  `gorm:"not null" json:"uploader_role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ContractImage) TableName() string { return "contract_images" }

// ImageRequest gates image exchange on a contract: at most one pending
// request exists per contract at a time.
type ImageRequest struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	ContractID  string             `gorm:"index;not null;column:contract_id" json:"contract_id"`
	RequestedBy uint               `gorm:"not null;column:requested_by" json:"requested_by"`
	Status      ImageRequestStatus `gorm:"not null;default:pending" json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func (ImageRequest) TableName() string { return "contract_image_requests" }
