package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/agrisetu/farmlink-backend/internal/apierr"
	"github.com/agrisetu/farmlink-backend/internal/logger"
	"github.com/agrisetu/farmlink-backend/internal/models"
	"github.com/agrisetu/farmlink-backend/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxImageBytes is the per-file upload ceiling; larger files are skipped
// without failing the batch.
const MaxImageBytes = 5 << 20

// UploadFile is one file from a multipart upload batch.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadResult reports how a batch fared; skipped files are not an
// error.
type UploadResult struct {
	Uploaded int `json:"uploaded"`
	Skipped  int `json:"skipped"`
}

// ImageService runs the gated image exchange on a contract: a single
// pending request at a time, created by the accepted trader of a
// negotiating contract and fulfilled by the owning farmer via upload.
type ImageService interface {
	CreateRequest(caller *models.User, contractID string) (*models.ImageRequest, error)
	GetRequest(contractID string) (*models.ImageRequest, error)
	FulfillRequest(caller *models.User, contractID string) error
	UploadImages(caller *models.User, contractID string, files []UploadFile) (*UploadResult, error)
	ListImages(contractID string) ([]models.ContractImage, error)
}

type imageService struct {
	db    *gorm.DB
	store storage.FileStore
	log   *logger.Logger
}

func NewImageService(db *gorm.DB, store storage.FileStore, log *logger.Logger) ImageService {
	return &imageService{db: db, store: store, log: log}
}

func (s *imageService) loadContract(contractID string) (*models.Contract, error) {
	var contract models.Contract
	err := s.db.Where("contract_id = ?", contractID).First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("contract %s not found", contractID))
		}
		return nil, apierr.Internal(err)
	}
	return &contract, nil
}

// CreateRequest opens an image request. Only the accepted trader of a
// negotiating contract may ask, and only while no other request is
// pending.
func (s *imageService) CreateRequest(caller *models.User, contractID string) (*models.ImageRequest, error) {
	contract, err := s.loadContract(contractID)
	if err != nil {
		return nil, err
	}
	if contract.ContractStatus != models.ContractStatusNegotiating {
		return nil, apierr.Conflict(fmt.Errorf("contract %s is %s, not negotiating", contractID, contract.ContractStatus))
	}
	if contract.TraderUserID == nil || *contract.TraderUserID != caller.UserID {
		return nil, apierr.Forbidden(fmt.Errorf("user %d is not the accepted trader of %s", caller.UserID, contractID))
	}

	var pending models.ImageRequest
	err = s.db.Where("contract_id = ? AND status = ?", contractID, models.ImageRequestStatusPending).
		First(&pending).Error
	if err == nil {
		return nil, apierr.Conflict(fmt.Errorf("contract %s already has a pending image request", contractID))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.Internal(err)
	}

	request := models.ImageRequest{
		ContractID:  contractID,
		RequestedBy: caller.UserID,
		Status:      models.ImageRequestStatusPending,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	return &request, nil
}

// GetRequest returns the latest image request on the contract.
func (s *imageService) GetRequest(contractID string) (*models.ImageRequest, error) {
	if _, err := s.loadContract(contractID); err != nil {
		return nil, err
	}
	var request models.ImageRequest
	err := s.db.Where("contract_id = ?", contractID).
		Order("id DESC").First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("no image request for contract %s", contractID))
		}
		return nil, apierr.Internal(err)
	}
	return &request, nil
}

// FulfillRequest marks the pending request fulfilled. Owning farmer
// only.
func (s *imageService) FulfillRequest(caller *models.User, contractID string) error {
	contract, err := s.loadContract(contractID)
	if err != nil {
		return err
	}
	if contract.UserID != caller.UserID {
		return apierr.Forbidden(fmt.Errorf("user %d does not own contract %s", caller.UserID, contractID))
	}

	var request models.ImageRequest
	err = s.db.Where("contract_id = ? AND status = ?", contractID, models.ImageRequestStatusPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound(fmt.Errorf("no pending image request for contract %s", contractID))
		}
		return apierr.Internal(err)
	}

	if err := s.db.Model(&request).Update("status", models.ImageRequestStatusFulfilled).Error; err != nil {
		return apierr.Internal(err)
	}
	return nil
}

// UploadImages stores a batch of files against the contract. Per-file
// policy is skip-and-continue: oversized or undecodable payloads are
// dropped without failing the batch. Caller must be the owning farmer or
// the accepted trader.
func (s *imageService) UploadImages(caller *models.User, contractID string, files []UploadFile) (*UploadResult, error) {
	contract, err := s.loadContract(contractID)
	if err != nil {
		return nil, err
	}

	isOwner := contract.UserID == caller.UserID
	isAcceptedTrader := contract.TraderUserID != nil && *contract.TraderUserID == caller.UserID
	if !isOwner && !isAcceptedTrader {
		return nil, apierr.Forbidden(fmt.Errorf("user %d may not upload to contract %s", caller.UserID, contractID))
	}

	result := &UploadResult{}
	for _, file := range files {
		if int64(len(file.Data)) > MaxImageBytes {
			s.log.Warn("skipping oversized upload",
				"contract_id", contractID, "file", file.Name, "size", len(file.Data))
			result.Skipped++
			continue
		}

		img, _, err := image.Decode(bytes.NewReader(file.Data))
		if err != nil {
			s.log.Warn("skipping undecodable upload",
				"contract_id", contractID, "file", file.Name, "error", err)
			result.Skipped++
			continue
		}
		bounds := img.Bounds()

		sum := sha256.Sum256(file.Data)
		storedName := uuid.New().String() + strings.ToLower(filepath.Ext(file.Name))

		if err := s.store.Save(storedName, file.Data); err != nil {
			return nil, apierr.Internal(err)
		}

		record := models.ContractImage{
			ContractID:   contractID,
			FileName:     storedName,
			OriginalName: file.Name,
			Checksum:     hex.EncodeToString(sum[:]),
			Width:        bounds.Dx(),
			Height:       bounds.Dy(),
			SizeBytes:    int64(len(file.Data)),
			UploaderID:   caller.UserID,
			UploaderRole: caller.UserType,
		}
		if err := s.db.Create(&record).Error; err != nil {
			// The stored file stays behind unindexed; reconciliation can
			// pick it up later.
			s.log.Error("image metadata write failed after storage write",
				"contract_id", contractID, "stored_name", storedName, "error", err)
			return nil, apierr.Internal(err)
		}
		result.Uploaded++
	}
	return result, nil
}

// ListImages returns the metadata rows for a contract's images.
func (s *imageService) ListImages(contractID string) ([]models.ContractImage, error) {
	if _, err := s.loadContract(contractID); err != nil {
		return nil, err
	}
	var images []models.ContractImage
	err := s.db.Where("contract_id = ?", contractID).
		Order("created_at DESC").Find(&images).Error
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return images, nil
}
