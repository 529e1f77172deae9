package repository

import (
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContestRepository struct {
	DB *gorm.DB
}

func NewContestRepository(db *gorm.DB) *ContestRepository {
	return &ContestRepository{DB: db}
}

func (r *ContestRepository) Create(c *model.Contest) error {
	return r.DB.Create(c).Error
}

func (r *ContestRepository) FindByID(id string) (*model.Contest, error) {
	var c model.Contest
	err := r.DB.First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContestNotFound
	}
	return &c, err
}

func (r *ContestRepository) List(page, limit int) ([]model.Contest, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Contest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contests []model.Contest
	offset := (page - 1) * limit
	err := r.DB.Order("start_at DESC").Offset(offset).Limit(limit).Find(&contests).Error
	return contests, total, err
}

// Join 重复报名直接忽略
func (r *ContestRepository) Join(p *model.ContestParticipant) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(p).Error
}

func (r *ContestRepository) FindParticipant(contestID string, userID uint) (*model.ContestParticipant, error) {
	var p model.ContestParticipant
	err := r.DB.Where("contest_id = ? AND user_id = ?", contestID, userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, err
}

func (r *ContestRepository) UpdateParticipantScore(contestID string, userID uint, score int) error {
	return r.DB.Model(&model.ContestParticipant{}).
		Where("contest_id = ? AND user_id = ?", contestID, userID).
		Update("score", score).Error
}

func (r *ContestRepository) FindByTestID(testID string) (*model.Contest, error) {
	var c model.Contest
	err := r.DB.Where("test_id = ?", testID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContestNotFound
	}
	return &c, err
}
