package repository

import (
	"errors"
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type VoteRepository struct {
	DB *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{DB: db}
}

func (r *VoteRepository) Find(userID uint, targetType, targetID string) (*model.Vote, error) {
	var v model.Vote
	err := r.DB.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, err
}

func (r *VoteRepository) Create(v *model.Vote) error {
	return r.DB.Create(v).Error
}

func (r *VoteRepository) Update(v *model.Vote) error {
	return r.DB.Save(v).Error
}

func (r *VoteRepository) Delete(id string) error {
	return r.DB.Unscoped().Delete(&model.Vote{}, "id = ?", id).Error
}
