package service

import (
	"encoding/json"
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/logger"
	"time"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

// TestAttemptService 作答生命周期：开始、答题、交卷、查询结果。
// 状态机 in_progress -> completed 只允许走一次，交卷后的记录不可变。
type TestAttemptService struct {
	TestRepo    repository.ModelTestRepository
	AttemptRepo repository.TestAttemptRepository
	ContestSvc  *ContestService

	now func() time.Time
}

func NewTestAttemptService(testRepo repository.ModelTestRepository, attemptRepo repository.TestAttemptRepository, contestSvc *ContestService) *TestAttemptService {
	return &TestAttemptService{
		TestRepo:    testRepo,
		AttemptRepo: attemptRepo,
		ContestSvc:  contestSvc,
		now:         time.Now,
	}
}

// StartTest 开始作答。同一 (user, test) 已有进行中的记录时直接返回该记录，
// 不会产生第二条（重进考试页面不丢进度）。
func (s *TestAttemptService) StartTest(testID string, userID uint) (*model.TestAttempt, error) {
	test, err := s.TestRepo.FindByIDWithQuestions(testID)
	if err != nil {
		return nil, err
	}
	if !test.IsPublished {
		return nil, util.ErrTestNotPublished
	}

	attempt := &model.TestAttempt{
		TestID:         testID,
		UserID:         userID,
		Status:         model.AttemptInProgress,
		StartTime:      s.now(),
		TotalQuestions: len(test.Questions),
	}

	return s.AttemptRepo.FindOrCreateInProgress(attempt)
}

// SubmitAnswer 提交或改选一题的答案，后写覆盖先写。
// 不校验 questionID 是否属于该试卷：无效的题目 ID 会被保存但计分时永远匹配不上。
func (s *TestAttemptService) SubmitAnswer(attemptID, questionID string, answerIndex int) error {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		return err
	}
	if attempt.Status != model.AttemptInProgress {
		return util.ErrAttemptNotActive
	}

	return s.AttemptRepo.UpsertAnswer(&model.TestAttemptAnswer{
		AttemptID:     attemptID,
		QuestionID:    questionID,
		SelectedIndex: answerIndex,
	})
}

// FinishTest 主动交卷：计分并一次性写入完成字段。
// 对已完成的作答重复交卷是硬错误而非静默成功。
func (s *TestAttemptService) FinishTest(attemptID string) (*model.TestAttempt, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != model.AttemptInProgress {
		return nil, util.ErrAttemptNotActive
	}

	test, err := s.TestRepo.FindByIDWithQuestions(attempt.TestID)
	if err != nil {
		return nil, err
	}

	rows, err := s.AttemptRepo.ListAnswers(attemptID)
	if err != nil {
		return nil, err
	}

	score, correct := ScoreAnswers(test.Questions, answersByQuestion(rows))
	endTime := s.now()
	completion := repository.AttemptCompletion{
		EndTime:          endTime,
		Score:            score,
		CorrectAnswers:   correct,
		TimeSpentSeconds: int(endTime.Sub(attempt.StartTime).Seconds()),
		AutoSubmitted:    false,
	}

	if err := s.AttemptRepo.CompleteIfInProgress(attemptID, completion); err != nil {
		// 条件更新没抢到说明清理任务已先完成该作答，对主动交卷方视为状态已变
		if errors.Is(err, util.ErrAttemptConflict) {
			return nil, util.ErrAttemptNotActive
		}
		return nil, err
	}

	if s.ContestSvc != nil {
		if err := s.ContestSvc.RecordResult(attempt.UserID, attempt.TestID, score); err != nil {
			logger.Log.Warn("failed to record contest result",
				zap.String("attemptId", attemptID), zap.Error(err))
		}
	}

	return s.AttemptRepo.FindByID(attemptID)
}

// ResultQuestion 结果页中的题目，包含正确项和解析
type ResultQuestion struct {
	ID                 string          `json:"id"`
	Content            string          `json:"content"`
	Options            json.RawMessage `json:"options"`
	Points             int             `json:"points"`
	Order              int             `json:"order"`
	CorrectAnswerIndex int             `json:"correctAnswerIndex"`
	Explanation        string          `json:"explanation,omitempty"`
}

type QuestionResult struct {
	Question   ResultQuestion `json:"question"`
	UserAnswer *int           `json:"userAnswer"`
	IsCorrect  bool           `json:"isCorrect"`
}

type TestResult struct {
	Attempt   *model.TestAttempt `json:"attempt"`
	Test      *model.ModelTest   `json:"test"`
	Questions []QuestionResult   `json:"questions"`
	IsPassed  bool               `json:"isPassed"`
}

// GetTestResults 结果页数据：逐题的作答与对错，按试卷题序排列。
// 未完成的作答也能查询，此时得分按 0 处理。
func (s *TestAttemptService) GetTestResults(attemptID string) (*TestResult, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}

	test, err := s.TestRepo.FindByIDWithQuestions(attempt.TestID)
	if err != nil {
		return nil, err
	}

	rows, err := s.AttemptRepo.ListAnswers(attemptID)
	if err != nil {
		return nil, err
	}
	answers := answersByQuestion(rows)

	results := make([]QuestionResult, len(test.Questions))
	for i, q := range test.Questions {
		var rq ResultQuestion
		if err := copier.Copy(&rq, &q); err != nil {
			return nil, err
		}

		qr := QuestionResult{Question: rq}
		if selected, ok := answers[q.ID]; ok {
			sel := selected
			qr.UserAnswer = &sel
			qr.IsCorrect = selected == q.CorrectAnswerIndex
		}
		results[i] = qr
	}

	score := 0
	if attempt.Score != nil {
		score = *attempt.Score
	}

	return &TestResult{
		Attempt:   attempt,
		Test:      test,
		Questions: results,
		IsPassed:  score >= test.PassingScore,
	}, nil
}

// ListMyAttempts 用户历史作答
func (s *TestAttemptService) ListMyAttempts(userID uint, page, limit int) ([]model.TestAttempt, int64, error) {
	return s.AttemptRepo.ListByUser(userID, page, limit)
}
