package models

// TempPhone stages a phone number change until its OTP is confirmed.
// UserID is the primary key, so a user has at most one row, tombstoned or not.
type TempPhone struct {
	UserID int64  `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"user_id"`
	PhNo   string `gorm:"column:ph_no;size:20;not null" json:"ph_no"`
	Otp    string `gorm:"column:otp;size:6;not null" json:"otp"`
	Timestamps
}

func (TempPhone) TableName() string { return "temp_phone" }
