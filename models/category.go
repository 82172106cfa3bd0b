package models

// Category has an independent lifecycle: deleting one does not cascade to
// its products, so an orphaned category_id on a product is possible.
type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Image       string `json:"image"`
}
