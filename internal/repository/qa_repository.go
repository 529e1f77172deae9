package repository

import (
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"

	"gorm.io/gorm"
)

type QARepository struct {
	DB *gorm.DB
}

func NewQARepository(db *gorm.DB) *QARepository {
	return &QARepository{DB: db}
}

func (r *QARepository) CreateQuestion(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QARepository) FindQuestionByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	return &q, err
}

func (r *QARepository) FindQuestionWithAnswers(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("answers.upvotes DESC, answers.created_at ASC")
	}).First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	return &q, err
}

func (r *QARepository) ListQuestions(subject string, page, limit int) ([]model.Question, int64, error) {
	query := r.DB.Model(&model.Question{})
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var qs []model.Question
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}

func (r *QARepository) DeleteQuestion(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, "id = ?", id).Error
	})
}

func (r *QARepository) CreateAnswer(a *model.Answer) error {
	return r.DB.Create(a).Error
}

func (r *QARepository) FindAnswerByID(id string) (*model.Answer, error) {
	var a model.Answer
	err := r.DB.First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, err
}

func (r *QARepository) UpdateAnswer(a *model.Answer) error {
	return r.DB.Save(a).Error
}

// AdjustUpvotes 投票变化量直接落在冗余计数列上
func (r *QARepository) AdjustUpvotes(targetType, targetID string, delta int) error {
	switch targetType {
	case model.VoteTargetQuestion:
		return r.DB.Model(&model.Question{}).Where("id = ?", targetID).
			UpdateColumn("upvotes", gorm.Expr("upvotes + ?", delta)).Error
	case model.VoteTargetAnswer:
		return r.DB.Model(&model.Answer{}).Where("id = ?", targetID).
			UpdateColumn("upvotes", gorm.Expr("upvotes + ?", delta)).Error
	}
	return nil
}
