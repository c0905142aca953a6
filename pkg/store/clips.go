package store

import (
	"errors"
	"time"

	"github.com/jinzhu/gorm"

	"clipshare/pkg/models"
)

var ErrClipNotFound = errors.New("clip not found")

type ClipStore struct {
	db *gorm.DB
}

func NewClipStore(db *gorm.DB) *ClipStore {
	return &ClipStore{db: db}
}

func (s *ClipStore) Create(clip *models.Clip) error {
	if clip.UploadDate.IsZero() {
		clip.UploadDate = time.Now().UTC()
	}
	return s.db.Create(clip).Error
}

// ListByRecency returns every clip, newest upload first. Uploads sharing a
// timestamp fall back to id order so the feed is deterministic.
func (s *ClipStore) ListByRecency() ([]models.Clip, error) {
	clips := make([]models.Clip, 0)
	err := s.db.Preload("User").Order("upload_date desc, id desc").Find(&clips).Error
	if err != nil {
		return nil, err
	}
	return clips, nil
}

func (s *ClipStore) GetByID(id uint) (*models.Clip, error) {
	var clip models.Clip
	if err := s.db.First(&clip, id).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrClipNotFound
		}
		return nil, err
	}
	return &clip, nil
}

func (s *ClipStore) Delete(clip *models.Clip) error {
	return s.db.Delete(clip).Error
}
