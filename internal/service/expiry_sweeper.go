package service

import (
	"errors"
	"fmt"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// ExpirySweeper 周期扫描进行中的限时作答，把超过截止时间的强制交卷。
// Sweep 幂等：与主动交卷撞上时，条件更新保证只有一方生效，输掉的一方跳过。
type ExpirySweeper struct {
	AttemptRepo repository.TestAttemptRepository
	TestRepo    repository.ModelTestRepository
	NotifySvc   *NotificationService
}

func NewExpirySweeper(attemptRepo repository.TestAttemptRepository, testRepo repository.ModelTestRepository, notifySvc *NotificationService) *ExpirySweeper {
	return &ExpirySweeper{
		AttemptRepo: attemptRepo,
		TestRepo:    testRepo,
		NotifySvc:   notifySvc,
	}
}

// Sweep 执行一轮清理，返回本轮强制交卷的数量。
// 单条作答的失败只记日志，不中断本轮其余作答的处理。
func (s *ExpirySweeper) Sweep(now time.Time) (int, error) {
	rows, err := s.AttemptRepo.FindTimedInProgress()
	if err != nil {
		return 0, fmt.Errorf("sweep: list in-progress attempts: %w", err)
	}

	submitted := 0
	for _, row := range rows {
		if !row.Expired(row.TimeLimitMinutes, now) {
			continue
		}
		if s.autoSubmit(&row.TestAttempt, row.TimeLimitMinutes) {
			submitted++
		}
	}
	return submitted, nil
}

// autoSubmit 强制交卷单条过期作答。
// EndTime 写截止时间而不是本轮扫描的时刻，保证记录的用时与限时一致，
// 不受清理任务延迟的影响。
func (s *ExpirySweeper) autoSubmit(attempt *model.TestAttempt, timeLimitMinutes int) bool {
	deadline := attempt.StartTime.Add(time.Duration(timeLimitMinutes) * time.Minute)

	test, err := s.TestRepo.FindByIDWithQuestions(attempt.TestID)
	if err != nil {
		logger.Log.Error("sweeper: failed to load test for expired attempt",
			zap.String("attemptId", attempt.ID), zap.String("testId", attempt.TestID), zap.Error(err))
		return false
	}

	rows, err := s.AttemptRepo.ListAnswers(attempt.ID)
	if err != nil {
		logger.Log.Error("sweeper: failed to load answers for expired attempt",
			zap.String("attemptId", attempt.ID), zap.Error(err))
		return false
	}

	score, correct := ScoreAnswers(test.Questions, answersByQuestion(rows))
	completion := repository.AttemptCompletion{
		EndTime:          deadline,
		Score:            score,
		CorrectAnswers:   correct,
		TimeSpentSeconds: int(deadline.Sub(attempt.StartTime).Seconds()),
		AutoSubmitted:    true,
	}

	if err := s.AttemptRepo.CompleteIfInProgress(attempt.ID, completion); err != nil {
		if errors.Is(err, util.ErrAttemptConflict) {
			// 用户在扫描间隙主动交了卷，跳过即可
			logger.Log.Debug("sweeper: attempt already completed by another writer",
				zap.String("attemptId", attempt.ID))
			return false
		}
		logger.Log.Error("sweeper: failed to auto-submit expired attempt",
			zap.String("attemptId", attempt.ID), zap.Error(err))
		return false
	}

	logger.Log.Info("auto-submitted expired test attempt",
		zap.String("attemptId", attempt.ID),
		zap.Uint("userId", attempt.UserID),
		zap.Int("score", score))

	if s.NotifySvc != nil {
		if err := s.NotifySvc.Notify(attempt.UserID, model.NotifyAutoSubmitted,
			"测试已自动提交", "限时已到，系统已为你自动交卷："+test.Title, attempt.ID); err != nil {
			logger.Log.Warn("sweeper: failed to create auto-submit notification",
				zap.String("attemptId", attempt.ID), zap.Error(err))
		}
	}
	return true
}
