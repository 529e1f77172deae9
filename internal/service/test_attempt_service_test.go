package service

import (
	"errors"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
	"sync"
	"testing"
	"time"
)

func newAttemptService(testRepo *fakeTestRepo, attemptRepo *fakeAttemptRepo, now time.Time) *TestAttemptService {
	svc := NewTestAttemptService(testRepo, attemptRepo, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestStartTestIsIdempotent(t *testing.T) {
	testRepo := newFakeTestRepo()
	attemptRepo := newFakeAttemptRepo()
	test := newPublishedTest(0)
	testRepo.put(test)

	svc := newAttemptService(testRepo, attemptRepo, time.Now())

	first, err := svc.StartTest(test.ID, 7)
	if err != nil {
		t.Fatalf("StartTest: %v", err)
	}
	second, err := svc.StartTest(test.ID, 7)
	if err != nil {
		t.Fatalf("StartTest again: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected same attempt on restart, got %s and %s", first.ID, second.ID)
	}
	if n := attemptRepo.countInProgress(7, test.ID); n != 1 {
		t.Errorf("in-progress attempts = %d, want 1", n)
	}
	if first.Status != model.AttemptInProgress {
		t.Errorf("status = %s, want %s", first.Status, model.AttemptInProgress)
	}
	if first.TotalQuestions != 2 {
		t.Errorf("totalQuestions = %d, want 2", first.TotalQuestions)
	}
}

func TestStartTestConcurrentCallsYieldSingleAttempt(t *testing.T) {
	testRepo := newFakeTestRepo()
	attemptRepo := newFakeAttemptRepo()
	test := newPublishedTest(0)
	testRepo.put(test)

	svc := newAttemptService(testRepo, attemptRepo, time.Now())

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.StartTest(test.ID, 7); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("StartTest: %v", err)
	}
	if n := attemptRepo.countInProgress(7, test.ID); n != 1 {
		t.Errorf("in-progress attempts = %d, want 1", n)
	}
}

func TestStartTestRejectsUnpublished(t *testing.T) {
	testRepo := newFakeTestRepo()
	test := newPublishedTest(0)
	test.IsPublished = false
	testRepo.put(test)

	svc := newAttemptService(testRepo, newFakeAttemptRepo(), time.Now())

	if _, err := svc.StartTest(test.ID, 1); !errors.Is(err, util.ErrTestNotPublished) {
		t.Errorf("err = %v, want ErrTestNotPublished", err)
	}
}

func TestSubmitAnswerLastWriteWins(t *testing.T) {
	testRepo := newFakeTestRepo()
	attemptRepo := newFakeAttemptRepo()
	test := newPublishedTest(0)
	testRepo.put(test)

	svc := newAttemptService(testRepo, attemptRepo, time.Now())
	attempt, err := svc.StartTest(test.ID, 1)
	if err != nil {
		t.Fatalf("StartTest: %v", err)
	}

	q1 := test.Questions[0].ID
	if err := svc.SubmitAnswer(attempt.ID, q1, 0); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if err := svc.SubmitAnswer(attempt.ID, q1, 1); err != nil {
		t.Fatalf("SubmitAnswer overwrite: %v", err)
	}

	rows, _ := attemptRepo.ListAnswers(attempt.ID)
	if len(rows) != 1 {
		t.Fatalf("answers = %d, want 1", len(rows))
	}
	if rows[0].SelectedIndex != 1 {
		t.Errorf("selectedIndex = %d, want 1", rows[0].SelectedIndex)
	}
}

func TestSubmitAnswerUnknownQuestionStoredButNotScored(t *testing.T) {
	testRepo := newFakeTestRepo()
	attemptRepo := newFakeAttemptRepo()
	test := newPublishedTest(0)
	testRepo.put(test)

	svc := newAttemptService(testRepo, attemptRepo, time.Now())
	attempt, _ := svc.StartTest(test.ID, 1)

	if err := svc.SubmitAnswer(attempt.ID, "not-a-real-question", 3); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	finished, err := svc.FinishTest(attempt.ID)
	if err != nil {
		t.Fatalf("FinishTest: %v", err)
	}
	if *finished.Score != 0 || *finished.CorrectAnswers != 0 {
		t.Errorf("score/correct = %d/%d, want 0/0", *finished.Score, *finished.CorrectAnswers)
	}
}

func TestFinishTestScoresAndCompletes(t *testing.T) {
	testRepo := newFakeTestRepo()
	attemptRepo := newFakeAttemptRepo()
	test := newPublishedTest(0)
	testRepo.put(test)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := newAttemptService(testRepo, attemptRepo, start)

	attempt, err := svc.StartTest(test.ID, 42)
	if err != nil {
		t.Fatalf("StartTest: %v", err)
	}

	// q1 答对（10 分），q2 答错
	if err := svc.SubmitAnswer(attempt.ID, test.Questions[0].ID, 1); err != nil {
		t.Fatalf("SubmitAnswer q1: %v", err)
	}
	if err := svc.SubmitAnswer(attempt.ID, test.Questions[1].ID, 2); err != nil {
		t.Fatalf("SubmitAnswer q2: %v", err)
	}

	end := start.Add(9 * time.Minute)
	svc.now = func() time.Time { return end }

	finished, err := svc.FinishTest(attempt.ID)
	if err != nil {
		t.Fatalf("FinishTest: %v", err)
	}

	if finished.Status != model.AttemptCompleted {
		t.Errorf("status = %s, want %s", finished.Status, model.AttemptCompleted)
	}
	if *finished.Score != 10 {
		t.Errorf("score = %d, want 10", *finished.Score)
	}
	if *finished.CorrectAnswers != 1 {
		t.Errorf("correctAnswers = %d, want 1", *finished.CorrectAnswers)
	}
	if *finished.TimeSpentSeconds != int(end.Sub(start).Seconds()) {
		t.Errorf("timeSpentSeconds = %d, want %d", *finished.TimeSpentSeconds, int(end.Sub(start).Seconds()))
	}
	if !finished.EndTime.Equal(end) {
		t.Errorf("endTime = %v, want %v", finished.EndTime, end)
	}
	if finished.AutoSubmitted {
		t.Error("autoSubmitted = true for a manual finish")
	}
}

func TestFinishTestTwiceIsConflict(t *testing.T) {
	testRepo := newFakeTestRepo()
	attemptRepo := newFakeAttemptRepo()
	test := newPublishedTest(0)
	testRepo.put(test)

	svc := newAttemptService(testRepo, attemptRepo, time.Now())
	attempt, _ := svc.StartTest(test.ID, 1)

	if _, err := svc.FinishTest(attempt.ID); err != nil {
		t.Fatalf("first finish: %v", err)
	}
	if _, err := svc.FinishTest(attempt.ID); !errors.Is(err, util.ErrAttemptNotActive) {
		t.Errorf("second finish err = %v, want ErrAttemptNotActive", err)
	}
}

func TestSubmitAnswerAfterCompletionRejected(t *testing.T) {
	testRepo := newFakeTestRepo()
	attemptRepo := newFakeAttemptRepo()
	test := newPublishedTest(0)
	testRepo.put(test)

	svc := newAttemptService(testRepo, attemptRepo, time.Now())
	attempt, _ := svc.StartTest(test.ID, 1)
	if _, err := svc.FinishTest(attempt.ID); err != nil {
		t.Fatalf("FinishTest: %v", err)
	}

	err := svc.SubmitAnswer(attempt.ID, test.Questions[0].ID, 1)
	if !errors.Is(err, util.ErrAttemptNotActive) {
		t.Errorf("err = %v, want ErrAttemptNotActive", err)
	}

	// 完成后的得分不再变化
	reloaded, _ := attemptRepo.FindByID(attempt.ID)
	if *reloaded.Score != 0 {
		t.Errorf("score changed after completion: %d", *reloaded.Score)
	}
}

func TestGetTestResults(t *testing.T) {
	testRepo := newFakeTestRepo()
	attemptRepo := newFakeAttemptRepo()
	test := newPublishedTest(0)
	testRepo.put(test)

	svc := newAttemptService(testRepo, attemptRepo, time.Now())
	attempt, _ := svc.StartTest(test.ID, 1)
	_ = svc.SubmitAnswer(attempt.ID, test.Questions[0].ID, 1) // 对
	_ = svc.SubmitAnswer(attempt.ID, test.Questions[1].ID, 2) // 错
	if _, err := svc.FinishTest(attempt.ID); err != nil {
		t.Fatalf("FinishTest: %v", err)
	}

	result, err := svc.GetTestResults(attempt.ID)
	if err != nil {
		t.Fatalf("GetTestResults: %v", err)
	}

	if len(result.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(result.Questions))
	}
	if !result.IsPassed {
		t.Error("isPassed = false, want true (score 10 >= passing 10)")
	}

	q1 := result.Questions[0]
	if q1.UserAnswer == nil || *q1.UserAnswer != 1 || !q1.IsCorrect {
		t.Errorf("q1 result = %+v, want answer 1 and correct", q1)
	}
	if q1.Question.CorrectAnswerIndex != 1 {
		t.Errorf("q1 correctAnswerIndex = %d, want 1", q1.Question.CorrectAnswerIndex)
	}

	q2 := result.Questions[1]
	if q2.UserAnswer == nil || *q2.UserAnswer != 2 || q2.IsCorrect {
		t.Errorf("q2 result = %+v, want answer 2 and incorrect", q2)
	}
}

func TestGetTestResultsBeforeCompletion(t *testing.T) {
	testRepo := newFakeTestRepo()
	attemptRepo := newFakeAttemptRepo()
	test := newPublishedTest(0)
	testRepo.put(test)

	svc := newAttemptService(testRepo, attemptRepo, time.Now())
	attempt, _ := svc.StartTest(test.ID, 1)

	result, err := svc.GetTestResults(attempt.ID)
	if err != nil {
		t.Fatalf("GetTestResults: %v", err)
	}
	if result.Attempt.Score != nil {
		t.Errorf("score = %v, want nil before completion", *result.Attempt.Score)
	}
	// 得分按 0 处理，及格线为 10 时不应通过
	if result.IsPassed {
		t.Error("isPassed = true for an unfinished attempt")
	}
	for _, q := range result.Questions {
		if q.UserAnswer != nil {
			t.Errorf("unexpected userAnswer %d before any submission", *q.UserAnswer)
		}
	}
}
