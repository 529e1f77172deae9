package model

import "encoding/json"

// ModelTest 模拟测试试卷。发布后题目和分值不可再修改。
// swagger:model ModelTest
type ModelTest struct {
	UUIDBase
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Subject     string `gorm:"size:50;index" json:"subject"`
	CreatorID   uint   `gorm:"index" json:"creatorId"`
	// TimeLimitMinutes 为 0 表示不限时，永不被自动提交
	TimeLimitMinutes int                 `gorm:"default:0" json:"timeLimitMinutes"`
	TotalPoints      int                 `gorm:"default:0" json:"totalPoints"`
	PassingScore     int                 `gorm:"default:0" json:"passingScore"`
	IsPublished      bool                `gorm:"default:false;index" json:"isPublished"`
	Questions        []ModelTestQuestion `gorm:"foreignKey:TestID" json:"questions,omitempty"`
}

func (ModelTest) TableName() string {
	return "model_tests"
}

type ModelTestQuestion struct {
	UUIDBase
	TestID             string          `gorm:"index;type:varchar(36)" json:"testId"`
	Content            string          `gorm:"type:text;not null" json:"content"`
	Options            json.RawMessage `gorm:"type:json" json:"options"`
	CorrectAnswerIndex int             `gorm:"not null" json:"-"`
	Points             int             `gorm:"default:0" json:"points"`
	Explanation        string          `gorm:"type:text" json:"explanation,omitempty"`
	Order              int             `gorm:"column:question_order;default:0" json:"order"`
}

func (ModelTestQuestion) TableName() string {
	return "model_test_questions"
}
