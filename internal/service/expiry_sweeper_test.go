package service

import (
	"testing"
	"time"

	"studyhub_backend/internal/model"
)

func setupSweeper(t *testing.T, timeLimitMinutes int) (*ExpirySweeper, *fakeTestRepo, *fakeAttemptRepo, *model.ModelTest) {
	t.Helper()
	testRepo := newFakeTestRepo()
	attemptRepo := newFakeAttemptRepo()
	test := newPublishedTest(timeLimitMinutes)
	testRepo.put(test)
	attemptRepo.timeLimits[test.ID] = timeLimitMinutes

	sweeper := NewExpirySweeper(attemptRepo, testRepo, nil)
	return sweeper, testRepo, attemptRepo, test
}

func startAttemptAt(t *testing.T, testRepo *fakeTestRepo, attemptRepo *fakeAttemptRepo, test *model.ModelTest, userID uint, start time.Time) *model.TestAttempt {
	t.Helper()
	svc := newAttemptService(testRepo, attemptRepo, start)
	attempt, err := svc.StartTest(test.ID, userID)
	if err != nil {
		t.Fatalf("StartTest: %v", err)
	}
	return attempt
}

func TestSweepBeforeDeadlineDoesNothing(t *testing.T) {
	sweeper, testRepo, attemptRepo, test := setupSweeper(t, 30)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	attempt := startAttemptAt(t, testRepo, attemptRepo, test, 1, start)

	// 截止前一秒不收
	swept, err := sweeper.Sweep(start.Add(30*time.Minute - time.Second))
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if swept != 0 {
		t.Errorf("swept = %d, want 0", swept)
	}

	reloaded, _ := attemptRepo.FindByID(attempt.ID)
	if reloaded.Status != model.AttemptInProgress {
		t.Errorf("status = %s, want still in_progress", reloaded.Status)
	}
}

func TestSweepAutoSubmitsExpiredAttempt(t *testing.T) {
	sweeper, testRepo, attemptRepo, test := setupSweeper(t, 30)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	attempt := startAttemptAt(t, testRepo, attemptRepo, test, 1, start)

	// 截止前提交了一题正确答案
	svc := newAttemptService(testRepo, attemptRepo, start)
	if err := svc.SubmitAnswer(attempt.ID, test.Questions[0].ID, 1); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	deadline := start.Add(30 * time.Minute)
	// 清理任务迟到了 5 分钟才跑
	swept, err := sweeper.Sweep(deadline.Add(5 * time.Minute))
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if swept != 1 {
		t.Fatalf("swept = %d, want 1", swept)
	}

	reloaded, _ := attemptRepo.FindByID(attempt.ID)
	if reloaded.Status != model.AttemptCompleted {
		t.Fatalf("status = %s, want completed", reloaded.Status)
	}
	if !reloaded.AutoSubmitted {
		t.Error("autoSubmitted = false, want true")
	}
	// EndTime 记截止时间，不是扫描时刻
	if !reloaded.EndTime.Equal(deadline) {
		t.Errorf("endTime = %v, want deadline %v", reloaded.EndTime, deadline)
	}
	if *reloaded.TimeSpentSeconds != int((30 * time.Minute).Seconds()) {
		t.Errorf("timeSpentSeconds = %d, want %d", *reloaded.TimeSpentSeconds, int((30 * time.Minute).Seconds()))
	}
	if *reloaded.Score != 10 || *reloaded.CorrectAnswers != 1 {
		t.Errorf("score/correct = %d/%d, want 10/1", *reloaded.Score, *reloaded.CorrectAnswers)
	}
}

func TestSweepAtExactDeadline(t *testing.T) {
	sweeper, testRepo, attemptRepo, test := setupSweeper(t, 30)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	startAttemptAt(t, testRepo, attemptRepo, test, 1, start)

	// 恰好到达截止时刻即视为过期
	swept, err := sweeper.Sweep(start.Add(30 * time.Minute))
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if swept != 1 {
		t.Errorf("swept = %d, want 1", swept)
	}
}

func TestSweepIgnoresUntimedTests(t *testing.T) {
	sweeper, testRepo, attemptRepo, test := setupSweeper(t, 0)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	attempt := startAttemptAt(t, testRepo, attemptRepo, test, 1, start)

	// 不限时试卷无论过去多久都不收
	swept, err := sweeper.Sweep(start.Add(1000 * time.Hour))
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if swept != 0 {
		t.Errorf("swept = %d, want 0", swept)
	}

	reloaded, _ := attemptRepo.FindByID(attempt.ID)
	if reloaded.Status != model.AttemptInProgress {
		t.Errorf("status = %s, want in_progress", reloaded.Status)
	}
}

func TestSweepSkipsAlreadyCompletedAttempt(t *testing.T) {
	sweeper, testRepo, attemptRepo, test := setupSweeper(t, 30)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	attempt := startAttemptAt(t, testRepo, attemptRepo, test, 1, start)

	// 模拟清理任务扫描后、写入前用户抢先交卷：
	// 列表里还有这条记录，但条件更新会输掉
	rows, err := attemptRepo.FindTimedInProgress()
	if err != nil || len(rows) != 1 {
		t.Fatalf("FindTimedInProgress: rows=%d err=%v", len(rows), err)
	}

	finishSvc := newAttemptService(testRepo, attemptRepo, start.Add(29*time.Minute))
	if _, err := finishSvc.FinishTest(attempt.ID); err != nil {
		t.Fatalf("FinishTest: %v", err)
	}

	swept, err := sweeper.Sweep(start.Add(31 * time.Minute))
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if swept != 0 {
		t.Errorf("swept = %d, want 0 (attempt already finished by user)", swept)
	}

	// 主动交卷的结果保持不变
	reloaded, _ := attemptRepo.FindByID(attempt.ID)
	if reloaded.AutoSubmitted {
		t.Error("autoSubmitted = true, user finish should have won")
	}
	if !reloaded.EndTime.Equal(start.Add(29 * time.Minute)) {
		t.Errorf("endTime = %v, want user finish time", reloaded.EndTime)
	}
}

func TestSweepHandlesMultipleAttemptsIndependently(t *testing.T) {
	sweeper, testRepo, attemptRepo, test := setupSweeper(t, 30)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	expired := startAttemptAt(t, testRepo, attemptRepo, test, 1, start)
	fresh := startAttemptAt(t, testRepo, attemptRepo, test, 2, start.Add(20*time.Minute))

	swept, err := sweeper.Sweep(start.Add(35 * time.Minute))
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if swept != 1 {
		t.Fatalf("swept = %d, want 1", swept)
	}

	a1, _ := attemptRepo.FindByID(expired.ID)
	if a1.Status != model.AttemptCompleted {
		t.Errorf("expired attempt status = %s, want completed", a1.Status)
	}
	a2, _ := attemptRepo.FindByID(fresh.ID)
	if a2.Status != model.AttemptInProgress {
		t.Errorf("fresh attempt status = %s, want in_progress", a2.Status)
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	sweeper, testRepo, attemptRepo, test := setupSweeper(t, 30)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	startAttemptAt(t, testRepo, attemptRepo, test, 1, start)

	at := start.Add(31 * time.Minute)
	if swept, _ := sweeper.Sweep(at); swept != 1 {
		t.Fatalf("first sweep = %d, want 1", swept)
	}
	if swept, _ := sweeper.Sweep(at); swept != 0 {
		t.Errorf("second sweep = %d, want 0", swept)
	}
}
