package models

// Order is created once per checkout session. Lifecycle beyond creation
// (toggling active_flg, fulfillment) is not modeled.
type Order struct {
	ID        int64 `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64 `gorm:"column:user_id;not null"`
	ActiveFlg bool  `gorm:"column:active_flg;not null;default:false"`
}

func (Order) TableName() string { return "user_order" }
