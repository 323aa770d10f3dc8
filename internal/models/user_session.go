package models

// UserSession is one active login.
type UserSession struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64  `gorm:"column:user_id;not null;index" json:"user_id"`
	FcmToken string `gorm:"column:fcm_token;size:255;not null" json:"fcm_token"`
	Token    string `gorm:"column:token;size:755;not null" json:"token"`
	Timestamps
}

func (UserSession) TableName() string { return "user_session" }
