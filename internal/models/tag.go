package models

type Tag struct {
	ID    uint64 `gorm:"primarykey" json:"id"`
	Name  string `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	Color string `gorm:"type:varchar(7);uniqueIndex;not null;default:'#999999'" json:"color"`
	Slug  string `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
}
