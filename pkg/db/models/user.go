package models

// User is a storefront account. The password column holds only the
// peppered bcrypt hash; plaintext never reaches the store.
type User struct {
	ID           int64   `gorm:"column:id;primaryKey;autoIncrement"`
	UserName     string  `gorm:"column:user_name;not null;uniqueIndex:site_user_user_name_key"`
	FirstName    *string `gorm:"column:first_name"`
	LastName     *string `gorm:"column:last_name"`
	PasswordHash string  `gorm:"column:password;not null"`
}

func (User) TableName() string { return "site_user" }
