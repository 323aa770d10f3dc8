package models

// OTP lengths.
const (
	RideOTPLength  = 4
	LoginOTPLength = 6
)

// User is keyed by (CountryCode, PhoneNumber) among live rows.
// ReferedBy points at another user's ID and is never dereferenced by the store.
type User struct {
	ID             int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	CountryCode    string  `gorm:"column:country_code;size:5;not null;uniqueIndex:idx_users_phone,where:deleted_at IS NULL" json:"countryCode"`
	PhoneNumber    string  `gorm:"column:phone_number;size:20;not null;uniqueIndex:idx_users_phone,where:deleted_at IS NULL" json:"phoneNumber"`
	FullName       string  `gorm:"column:full_name;size:125" json:"fullName"`
	Gender         int     `gorm:"column:gender" json:"gender"`
	IsBusinessUser bool    `gorm:"column:is_business_user" json:"isBusinessUser"`
	IsActive       bool    `gorm:"column:is_active" json:"isActive"`
	EmailID        string  `gorm:"column:email_id;size:125" json:"emailID"`
	RideOTP        string  `gorm:"column:ride_otp;size:4" json:"rideOTP"`
	IsVerified     bool    `gorm:"column:is_verified" json:"isVerified"`
	ReferalCode    *string `gorm:"column:referal_code;size:20;uniqueIndex" json:"referalCode"`
	ReferedBy      *int64  `gorm:"column:refered_by;index" json:"referedBy"`
	Timestamps
}

func (User) TableName() string { return "users" }

// HasReferalCode reports whether a referral code was already assigned.
func (u *User) HasReferalCode() bool {
	return u.ReferalCode != nil && *u.ReferalCode != ""
}
