package service

import (
	"encoding/json"
	"errors"
	"testing"

	"studyhub_backend/internal/util"
)

func newTestReq(passingScore int) ModelTestReq {
	return ModelTestReq{
		Title:        "数据结构测验",
		Subject:      "cs",
		PassingScore: passingScore,
		Questions: []TestQuestionReq{
			{
				Content:            "链表头插的时间复杂度",
				Options:            json.RawMessage(`["O(n)","O(1)"]`),
				CorrectAnswerIndex: 1,
				Points:             10,
			},
		},
	}
}

func TestPublishRejectsPassingScoreAboveTotal(t *testing.T) {
	svc := NewModelTestService(newFakeTestRepo())

	// 总分 10，及格线 100：这样的试卷永远无人通过
	test, err := svc.Create(1, newTestReq(100))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if test.TotalPoints != 10 {
		t.Fatalf("totalPoints = %d, want 10", test.TotalPoints)
	}

	if _, err := svc.Publish(1, test.ID); !errors.Is(err, util.ErrInvalidPassingScore) {
		t.Errorf("Publish err = %v, want ErrInvalidPassingScore", err)
	}

	reloaded, _ := svc.Repo.FindByID(test.ID)
	if reloaded.IsPublished {
		t.Error("test got published despite invalid passing score")
	}
}

func TestPublishAllowsPassingScoreAtTotal(t *testing.T) {
	svc := NewModelTestService(newFakeTestRepo())

	test, err := svc.Create(1, newTestReq(10))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	published, err := svc.Publish(1, test.ID)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !published.IsPublished {
		t.Error("isPublished = false after publish")
	}
}
