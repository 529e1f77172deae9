package service

import (
	"studyhub_backend/internal/model"
	"testing"
)

func TestScoreAnswers(t *testing.T) {
	questions := []model.ModelTestQuestion{
		{UUIDBase: model.UUIDBase{ID: "q1"}, CorrectAnswerIndex: 1, Points: 10},
		{UUIDBase: model.UUIDBase{ID: "q2"}, CorrectAnswerIndex: 0, Points: 5},
		{UUIDBase: model.UUIDBase{ID: "q3"}, CorrectAnswerIndex: 2, Points: 3},
	}

	tests := []struct {
		name        string
		answers     map[string]int
		wantScore   int
		wantCorrect int
	}{
		{
			name:        "all correct",
			answers:     map[string]int{"q1": 1, "q2": 0, "q3": 2},
			wantScore:   18,
			wantCorrect: 3,
		},
		{
			name:        "partially answered",
			answers:     map[string]int{"q1": 1},
			wantScore:   10,
			wantCorrect: 1,
		},
		{
			name:        "wrong answers score zero",
			answers:     map[string]int{"q1": 0, "q2": 1, "q3": 1},
			wantScore:   0,
			wantCorrect: 0,
		},
		{
			name:        "no answers",
			answers:     map[string]int{},
			wantScore:   0,
			wantCorrect: 0,
		},
		{
			name:        "unknown question ids are ignored",
			answers:     map[string]int{"q1": 1, "ghost": 2, "another-ghost": 0},
			wantScore:   10,
			wantCorrect: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, correct := ScoreAnswers(questions, tt.answers)
			if score != tt.wantScore || correct != tt.wantCorrect {
				t.Errorf("ScoreAnswers() = (%d, %d), want (%d, %d)",
					score, correct, tt.wantScore, tt.wantCorrect)
			}
		})
	}
}

func TestScoreAnswersDeterministic(t *testing.T) {
	questions := []model.ModelTestQuestion{
		{UUIDBase: model.UUIDBase{ID: "q1"}, CorrectAnswerIndex: 1, Points: 10},
		{UUIDBase: model.UUIDBase{ID: "q2"}, CorrectAnswerIndex: 0, Points: 5},
	}
	answers := map[string]int{"q1": 1, "q2": 2}

	firstScore, firstCorrect := ScoreAnswers(questions, answers)
	for i := 0; i < 100; i++ {
		score, correct := ScoreAnswers(questions, answers)
		if score != firstScore || correct != firstCorrect {
			t.Fatalf("iteration %d: got (%d, %d), want (%d, %d)", i, score, correct, firstScore, firstCorrect)
		}
	}
}

func TestScoreAnswersZeroPointQuestion(t *testing.T) {
	questions := []model.ModelTestQuestion{
		{UUIDBase: model.UUIDBase{ID: "q1"}, CorrectAnswerIndex: 0, Points: 0},
	}

	score, correct := ScoreAnswers(questions, map[string]int{"q1": 0})
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
	if correct != 1 {
		t.Errorf("correct = %d, want 1", correct)
	}
}
