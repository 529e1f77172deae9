package service

import (
	"encoding/json"
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
)

type ModelTestService struct {
	Repo repository.ModelTestRepository
}

func NewModelTestService(repo repository.ModelTestRepository) *ModelTestService {
	return &ModelTestService{Repo: repo}
}

type TestQuestionReq struct {
	Content            string          `json:"content" binding:"required"`
	Options            json.RawMessage `json:"options" binding:"required"`
	CorrectAnswerIndex int             `json:"correctAnswerIndex"`
	Points             int             `json:"points"`
	Explanation        string          `json:"explanation"`
}

type ModelTestReq struct {
	Title            string            `json:"title" binding:"required"`
	Description      string            `json:"description"`
	Subject          string            `json:"subject"`
	TimeLimitMinutes int               `json:"timeLimitMinutes"`
	PassingScore     int               `json:"passingScore"`
	Questions        []TestQuestionReq `json:"questions"`
}

func (s *ModelTestService) Create(creatorID uint, req ModelTestReq) (*model.ModelTest, error) {
	if req.TimeLimitMinutes < 0 {
		return nil, errors.New("timeLimitMinutes must not be negative")
	}

	test := &model.ModelTest{
		Title:            req.Title,
		Description:      req.Description,
		Subject:          req.Subject,
		CreatorID:        creatorID,
		TimeLimitMinutes: req.TimeLimitMinutes,
		PassingScore:     req.PassingScore,
	}
	if err := s.Repo.Create(test); err != nil {
		return nil, err
	}

	if err := s.replaceQuestions(test, req.Questions); err != nil {
		return nil, err
	}
	return s.Repo.FindByIDWithQuestions(test.ID)
}

func (s *ModelTestService) Update(userID uint, testID string, req ModelTestReq) (*model.ModelTest, error) {
	test, err := s.Repo.FindByID(testID)
	if err != nil {
		return nil, err
	}
	if test.CreatorID != userID {
		return nil, util.ErrPermissionDenied
	}
	// 已发布的试卷题目与分值冻结
	if test.IsPublished && len(req.Questions) > 0 {
		return nil, util.ErrTestPublished
	}

	test.Title = req.Title
	test.Description = req.Description
	test.Subject = req.Subject
	if !test.IsPublished {
		test.TimeLimitMinutes = req.TimeLimitMinutes
		test.PassingScore = req.PassingScore
	}
	if err := s.Repo.Update(test); err != nil {
		return nil, err
	}

	if !test.IsPublished && len(req.Questions) > 0 {
		if err := s.Repo.DeleteQuestions(test.ID); err != nil {
			return nil, err
		}
		if err := s.replaceQuestions(test, req.Questions); err != nil {
			return nil, err
		}
	}
	return s.Repo.FindByIDWithQuestions(test.ID)
}

// Publish 发布试卷，使其对学生可见。发布后题目不可再改。
func (s *ModelTestService) Publish(userID uint, testID string) (*model.ModelTest, error) {
	test, err := s.Repo.FindByIDWithQuestions(testID)
	if err != nil {
		return nil, err
	}
	if test.CreatorID != userID {
		return nil, util.ErrPermissionDenied
	}
	if len(test.Questions) == 0 {
		return nil, errors.New("cannot publish a test without questions")
	}
	// 及格线不能超过总分，否则永远无人及格。发布时总分已定，在这里把关
	if test.PassingScore > test.TotalPoints {
		return nil, util.ErrInvalidPassingScore
	}

	test.IsPublished = true
	if err := s.Repo.Update(test); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *ModelTestService) Delete(userID uint, testID string) error {
	test, err := s.Repo.FindByID(testID)
	if err != nil {
		return err
	}
	if test.CreatorID != userID {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(testID)
}

// Get 学生只能看到已发布试卷；创建者不受此限制
func (s *ModelTestService) Get(userID uint, role model.UserRole, testID string) (*model.ModelTest, error) {
	test, err := s.Repo.FindByIDWithQuestions(testID)
	if err != nil {
		return nil, err
	}
	if !test.IsPublished && test.CreatorID != userID && role != model.Admin {
		return nil, util.ErrTestNotPublished
	}
	return test, nil
}

func (s *ModelTestService) ListPublished(subject string, page, limit int) ([]model.ModelTest, int64, error) {
	return s.Repo.ListPublished(subject, page, limit)
}

func (s *ModelTestService) ListAll(page, limit int) ([]model.ModelTest, int64, error) {
	return s.Repo.ListAll(page, limit)
}

// replaceQuestions 写入题目并重算总分
func (s *ModelTestService) replaceQuestions(test *model.ModelTest, reqs []TestQuestionReq) error {
	total := 0
	for i, qr := range reqs {
		if qr.Points < 0 {
			return errors.New("question points must not be negative")
		}
		q := &model.ModelTestQuestion{
			TestID:             test.ID,
			Content:            qr.Content,
			Options:            qr.Options,
			CorrectAnswerIndex: qr.CorrectAnswerIndex,
			Points:             qr.Points,
			Explanation:        qr.Explanation,
			Order:              i + 1,
		}
		if err := s.Repo.CreateQuestion(q); err != nil {
			return err
		}
		total += qr.Points
	}

	test.TotalPoints = total
	return s.Repo.Update(test)
}
