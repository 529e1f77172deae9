package model

// swagger:model Note
type Note struct {
	UUIDBase
	UserID   uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Title    string `gorm:"size:200;not null" json:"title"`
	Content  string `gorm:"type:longtext" json:"content"`
	Subject  string `gorm:"size:50;index" json:"subject"`
	IsPublic bool   `gorm:"default:false" json:"isPublic"`
	FileURL  string `gorm:"size:255" json:"fileUrl,omitempty"`
}

func (Note) TableName() string {
	return "notes"
}
