package models

// Category groups products. Products reference it by id without owning it.
type Category struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;not null"`
}

func (Category) TableName() string { return "category" }
