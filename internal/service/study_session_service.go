package service

import (
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"time"
)

type StudySessionService struct {
	Repo *repository.StudySessionRepository
}

func NewStudySessionService(repo *repository.StudySessionRepository) *StudySessionService {
	return &StudySessionService{Repo: repo}
}

// Start 开始计时学习。已有未结束的会话时直接返回它。
func (s *StudySessionService) Start(userID uint, subject string) (*model.StudySession, error) {
	if active, err := s.Repo.FindActive(userID); err == nil {
		return active, nil
	} else if !errors.Is(err, util.ErrSessionNotFound) {
		return nil, err
	}

	session := &model.StudySession{
		UserID:    userID,
		Subject:   subject,
		StartedAt: time.Now(),
	}
	if err := s.Repo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Stop 结束会话并写入时长
func (s *StudySessionService) Stop(userID uint, sessionID string) (*model.StudySession, error) {
	session, err := s.Repo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if session.EndedAt != nil {
		return nil, util.ErrSessionAlreadyEnded
	}

	now := time.Now()
	session.EndedAt = &now
	session.DurationSeconds = int(now.Sub(session.StartedAt).Seconds())

	if err := s.Repo.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *StudySessionService) List(userID uint, page, limit int) ([]model.StudySession, int64, error) {
	return s.Repo.ListByUser(userID, page, limit)
}
