package models

// OtpData holds the single pending login OTP of a user.
type OtpData struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64  `gorm:"column:user_id;not null;uniqueIndex:idx_otp_data_user,where:deleted_at IS NULL" json:"user_id"`
	OtpValue string `gorm:"column:otp_value;size:6;not null" json:"otp_value"`
	Timestamps
}

func (OtpData) TableName() string { return "otp_data" }
