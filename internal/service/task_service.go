package service

import (
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"time"
)

type TaskService struct {
	Repo *repository.TaskRepository
}

func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{Repo: repo}
}

type TaskReq struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueAt       *time.Time `json:"dueAt"`
}

func (s *TaskService) Create(userID uint, req TaskReq) (*model.Task, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}

	task := &model.Task{
		UserID: userID,
		Title:  *req.Title,
		DueAt:  req.DueAt,
	}
	if req.Description != nil {
		task.Description = *req.Description
	}

	if err := s.Repo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Update(userID uint, taskID string, req TaskReq) (*model.Task, error) {
	task, err := s.owned(userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueAt != nil {
		task.DueAt = req.DueAt
	}

	if err := s.Repo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

// SetCompleted 勾选或取消勾选任务
func (s *TaskService) SetCompleted(userID uint, taskID string, completed bool) (*model.Task, error) {
	task, err := s.owned(userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = completed
	if completed {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := s.Repo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(userID uint, taskID string) error {
	if _, err := s.owned(userID, taskID); err != nil {
		return err
	}
	return s.Repo.Delete(taskID)
}

func (s *TaskService) List(userID uint, completed *bool, page, limit int) ([]model.Task, int64, error) {
	return s.Repo.ListByUser(userID, completed, page, limit)
}

func (s *TaskService) owned(userID uint, taskID string) (*model.Task, error) {
	task, err := s.Repo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return task, nil
}
