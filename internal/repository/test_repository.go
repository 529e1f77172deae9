package repository

import (
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"

	"gorm.io/gorm"
)

// ModelTestRepository 试卷存取。接口化以便服务层测试使用内存实现。
type ModelTestRepository interface {
	Create(test *model.ModelTest) error
	Update(test *model.ModelTest) error
	Delete(id string) error
	FindByID(id string) (*model.ModelTest, error)
	FindByIDWithQuestions(id string) (*model.ModelTest, error)
	ListPublished(subject string, page, limit int) ([]model.ModelTest, int64, error)
	ListAll(page, limit int) ([]model.ModelTest, int64, error)
	CreateQuestion(q *model.ModelTestQuestion) error
	DeleteQuestions(testID string) error
}

type modelTestRepository struct {
	DB *gorm.DB
}

func NewModelTestRepository(db *gorm.DB) ModelTestRepository {
	return &modelTestRepository{DB: db}
}

func (r *modelTestRepository) Create(test *model.ModelTest) error {
	return r.DB.Create(test).Error
}

func (r *modelTestRepository) Update(test *model.ModelTest) error {
	return r.DB.Save(test).Error
}

func (r *modelTestRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", id).Delete(&model.ModelTestQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ModelTest{}, "id = ?", id).Error
	})
}

func (r *modelTestRepository) FindByID(id string) (*model.ModelTest, error) {
	var test model.ModelTest
	err := r.DB.First(&test, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTestNotFound
	}
	return &test, err
}

func (r *modelTestRepository) FindByIDWithQuestions(id string) (*model.ModelTest, error) {
	var test model.ModelTest
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("model_test_questions.question_order ASC")
	}).First(&test, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTestNotFound
	}
	return &test, err
}

func (r *modelTestRepository) ListPublished(subject string, page, limit int) ([]model.ModelTest, int64, error) {
	query := r.DB.Model(&model.ModelTest{}).Where("is_published = ?", true)
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tests []model.ModelTest
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tests).Error
	return tests, total, err
}

func (r *modelTestRepository) ListAll(page, limit int) ([]model.ModelTest, int64, error) {
	var total int64
	if err := r.DB.Model(&model.ModelTest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tests []model.ModelTest
	offset := (page - 1) * limit
	err := r.DB.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tests).Error
	return tests, total, err
}

func (r *modelTestRepository) CreateQuestion(q *model.ModelTestQuestion) error {
	return r.DB.Create(q).Error
}

func (r *modelTestRepository) DeleteQuestions(testID string) error {
	return r.DB.Where("test_id = ?", testID).Delete(&model.ModelTestQuestion{}).Error
}
