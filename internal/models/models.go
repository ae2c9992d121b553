package models

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type Product struct {
	ID          uint       `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name        string     `gorm:"not null"                    json:"name"`
	Description string     `gorm:"not null"                    json:"description"`
	Amount      int        `gorm:"not null"                    json:"amount"`
	Price       float64    `gorm:"not null"                    json:"price"`
	Categories  []Category `gorm:"many2many:category_products" json:"categories"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name        string    `gorm:"not null"                    json:"name"`
	Description string    `gorm:"not null"                    json:"description"`
	Products    []Product `gorm:"many2many:category_products" json:"products,omitempty"`
}

// CategoryProduct is one edge of the product/category relation. It has a
// surrogate id instead of a composite key, so the same edge may exist more
// than once.
type CategoryProduct struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID uint `gorm:"index;not null"           json:"category_id"`
	ProductID  uint `gorm:"index;not null"           json:"product_id"`
}
