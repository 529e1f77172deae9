package service

import (
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
)

type QAService struct {
	Repo      *repository.QARepository
	NotifySvc *NotificationService
}

func NewQAService(repo *repository.QARepository, notifySvc *NotificationService) *QAService {
	return &QAService{Repo: repo, NotifySvc: notifySvc}
}

type QuestionReq struct {
	Title   string `json:"title" binding:"required"`
	Body    string `json:"body"`
	Subject string `json:"subject"`
}

type AnswerReq struct {
	Body string `json:"body" binding:"required"`
}

func (s *QAService) CreateQuestion(userID uint, req QuestionReq) (*model.Question, error) {
	q := &model.Question{
		UserID:  userID,
		Title:   req.Title,
		Body:    req.Body,
		Subject: req.Subject,
	}
	if err := s.Repo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QAService) GetQuestion(id string) (*model.Question, error) {
	return s.Repo.FindQuestionWithAnswers(id)
}

func (s *QAService) ListQuestions(subject string, page, limit int) ([]model.Question, int64, error) {
	return s.Repo.ListQuestions(subject, page, limit)
}

func (s *QAService) DeleteQuestion(userID uint, role model.UserRole, id string) error {
	q, err := s.Repo.FindQuestionByID(id)
	if err != nil {
		return err
	}
	if q.UserID != userID && role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.Repo.DeleteQuestion(id)
}

// PostAnswer 回答问题并通知提问者
func (s *QAService) PostAnswer(userID uint, questionID string, req AnswerReq) (*model.Answer, error) {
	q, err := s.Repo.FindQuestionByID(questionID)
	if err != nil {
		return nil, err
	}

	answer := &model.Answer{
		QuestionID: questionID,
		UserID:     userID,
		Body:       req.Body,
	}
	if err := s.Repo.CreateAnswer(answer); err != nil {
		return nil, err
	}

	// 自问自答不发通知
	if q.UserID != userID && s.NotifySvc != nil {
		_ = s.NotifySvc.Notify(q.UserID, model.NotifyAnswerPosted,
			"你的问题有了新回答", q.Title, questionID)
	}

	return answer, nil
}

// AcceptAnswer 提问者采纳回答
func (s *QAService) AcceptAnswer(userID uint, questionID, answerID string) error {
	q, err := s.Repo.FindQuestionByID(questionID)
	if err != nil {
		return err
	}
	if q.UserID != userID {
		return util.ErrPermissionDenied
	}

	answer, err := s.Repo.FindAnswerByID(answerID)
	if err != nil {
		return err
	}
	if answer.QuestionID != questionID {
		return util.ErrQuestionNotFound
	}

	answer.IsAccepted = true
	return s.Repo.UpdateAnswer(answer)
}
