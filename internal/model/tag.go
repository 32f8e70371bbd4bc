package model

type Tag struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex:tags_name_key"`
}

func (Tag) TableName() string {
	return "tags"
}

// TagCount 标签及其引用次数
type TagCount struct {
	Name  string
	Count int64
}
