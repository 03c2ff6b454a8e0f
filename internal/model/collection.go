package model

// Collection groups products into a category
type Collection struct {
	ID    uint   `json:"id" gorm:"primarykey"`
	Title string `json:"title" gorm:"type:varchar(50);not null"`
}
