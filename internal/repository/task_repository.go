package repository

import (
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"

	"gorm.io/gorm"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(task *model.Task) error {
	return r.DB.Create(task).Error
}

func (r *TaskRepository) FindByID(id string) (*model.Task, error) {
	var task model.Task
	err := r.DB.First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTaskNotFound
	}
	return &task, err
}

func (r *TaskRepository) Update(task *model.Task) error {
	return r.DB.Save(task).Error
}

func (r *TaskRepository) Delete(id string) error {
	return r.DB.Delete(&model.Task{}, "id = ?", id).Error
}

func (r *TaskRepository) ListByUser(userID uint, completed *bool, page, limit int) ([]model.Task, int64, error) {
	query := r.DB.Model(&model.Task{}).Where("user_id = ?", userID)
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []model.Task
	offset := (page - 1) * limit
	err := query.Order("due_at IS NULL, due_at ASC, created_at DESC").Offset(offset).Limit(limit).Find(&tasks).Error
	return tasks, total, err
}
