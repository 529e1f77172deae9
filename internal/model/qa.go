package model

// Question 社区问答中的提问
type Question struct {
	UUIDBase
	UserID  uint     `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Title   string   `gorm:"size:200;not null" json:"title"`
	Body    string   `gorm:"type:text" json:"body"`
	Subject string   `gorm:"size:50;index" json:"subject"`
	Upvotes int      `gorm:"default:0" json:"upvotes"`
	Answers []Answer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

type Answer struct {
	UUIDBase
	QuestionID string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	UserID     uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Body       string `gorm:"type:text;not null" json:"body"`
	Upvotes    int    `gorm:"default:0" json:"upvotes"`
	IsAccepted bool   `gorm:"default:false" json:"isAccepted"`
}

func (Answer) TableName() string {
	return "answers"
}
