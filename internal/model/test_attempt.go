package model

import "time"

// 测试作答记录的状态机：not_started -> in_progress -> completed。
// 实际创建即为 in_progress，not_started 仅为兼容保留。
const (
	AttemptNotStarted = "not_started"
	AttemptInProgress = "in_progress"
	AttemptCompleted  = "completed"
)

// TestAttempt 一次用户对某套模拟测试的作答。
// 完成后（status=completed）记录不可再变更，得分只计算一次。
// swagger:model TestAttempt
type TestAttempt struct {
	UUIDBase
	TestID         string     `gorm:"index:idx_attempt_user_test;type:varchar(36);not null" json:"testId"`
	UserID         uint       `gorm:"index:idx_attempt_user_test;type:bigint unsigned;not null" json:"userId"`
	Status         string     `gorm:"size:20;default:'in_progress';index" json:"status"`
	StartTime      time.Time  `json:"startTime"`
	EndTime        *time.Time `json:"endTime"`
	TotalQuestions int        `gorm:"default:0" json:"totalQuestions"`
	// 以下字段在完成前为 null，完成时一次性写入
	Score            *int `json:"score"`
	CorrectAnswers   *int `json:"correctAnswers"`
	TimeSpentSeconds *int `json:"timeSpentSeconds"`
	// AutoSubmitted 仅在由过期清理任务强制提交时为 true
	AutoSubmitted bool                `gorm:"default:false" json:"autoSubmitted"`
	Answers       []TestAttemptAnswer `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
}

func (TestAttempt) TableName() string {
	return "test_attempts"
}

// TestAttemptAnswer 某次作答中对单题的选择，后写覆盖先写。
type TestAttemptAnswer struct {
	UUIDBase
	AttemptID     string `gorm:"uniqueIndex:idx_attempt_question;type:varchar(36);not null" json:"attemptId"`
	QuestionID    string `gorm:"uniqueIndex:idx_attempt_question;type:varchar(36);not null" json:"questionId"`
	SelectedIndex int    `gorm:"not null" json:"selectedIndex"`
}

func (TestAttemptAnswer) TableName() string {
	return "test_attempt_answers"
}

// Expired 判断作答是否已超过试卷限时。不限时试卷永不过期。
func (a *TestAttempt) Expired(timeLimitMinutes int, now time.Time) bool {
	if timeLimitMinutes <= 0 {
		return false
	}
	deadline := a.StartTime.Add(time.Duration(timeLimitMinutes) * time.Minute)
	return !deadline.After(now)
}
