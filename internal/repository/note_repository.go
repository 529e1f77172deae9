package repository

import (
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"

	"gorm.io/gorm"
)

type NoteRepository struct {
	DB *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{DB: db}
}

func (r *NoteRepository) Create(note *model.Note) error {
	return r.DB.Create(note).Error
}

func (r *NoteRepository) FindByID(id string) (*model.Note, error) {
	var note model.Note
	err := r.DB.First(&note, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNoteNotFound
	}
	return &note, err
}

func (r *NoteRepository) Update(note *model.Note) error {
	return r.DB.Save(note).Error
}

func (r *NoteRepository) Delete(id string) error {
	return r.DB.Delete(&model.Note{}, "id = ?", id).Error
}

func (r *NoteRepository) ListByUser(userID uint, subject string, page, limit int) ([]model.Note, int64, error) {
	query := r.DB.Model(&model.Note{}).Where("user_id = ?", userID)
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notes []model.Note
	offset := (page - 1) * limit
	err := query.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&notes).Error
	return notes, total, err
}
