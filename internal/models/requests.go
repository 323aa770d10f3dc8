package models

// SendOTPInput is the body of POST /api/auth/send-otp.
type SendOTPInput struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,min=10,max=20"`
	CountryCode string `json:"countryCode" validate:"required,min=1,max=5"`
	HashKey     string `json:"hashKey" validate:"required"`
	ReferalID   string `json:"referalId" validate:"omitempty,max=20"`
}

// VerifyOTPInput is the body of POST /api/auth/verify-otp.
type VerifyOTPInput struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,min=10,max=20"`
	CountryCode string `json:"countryCode" validate:"required,min=1,max=5"`
	OtpValue    string `json:"otp_value" validate:"required,len=6,numeric"`
	FcmToken    string `json:"fcm_token" validate:"omitempty,max=255"`
}

type UpdateFcmInput struct {
	FcmToken string `json:"fcm_token" validate:"required,min=1,max=255"`
}

type ChangePhoneInput struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,min=10,max=20"`
	CountryCode string `json:"countryCode" validate:"required,min=1,max=5"`
}

type VerifyPhoneInput struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,min=10,max=20"`
	CountryCode string `json:"countryCode" validate:"required,min=1,max=5"`
	Otp         string `json:"otp" validate:"required,len=6,numeric"`
}

// CreateUserInput is used by the administrative user endpoints.
type CreateUserInput struct {
	CountryCode    string `json:"countryCode" validate:"required,min=1,max=5"`
	PhoneNumber    string `json:"phoneNumber" validate:"required,min=10,max=20"`
	FullName       string `json:"fullName" validate:"omitempty,max=125"`
	Gender         int    `json:"gender" validate:"omitempty,min=0"`
	IsBusinessUser bool   `json:"isBusinessUser"`
	EmailID        string `json:"emailID" validate:"omitempty,email,max=125"`
}

// UpdateUserInput only touches the fields that are set.
type UpdateUserInput struct {
	FullName       *string `json:"fullName" validate:"omitempty,max=125"`
	Gender         *int    `json:"gender" validate:"omitempty,min=0"`
	IsBusinessUser *bool   `json:"isBusinessUser"`
	IsActive       *bool   `json:"isActive"`
	EmailID        *string `json:"emailID" validate:"omitempty,email,max=125"`
}

type UpdateSessionInput struct {
	FcmToken *string `json:"fcm_token" validate:"omitempty,max=255"`
	Token    *string `json:"token" validate:"omitempty,max=755"`
}

type UpdateOtpDataInput struct {
	OtpValue string `json:"otp_value" validate:"required,len=6,numeric"`
}

type CreateOtpDataInput struct {
	UserID   int64  `json:"user_id" validate:"required,min=1"`
	OtpValue string `json:"otp_value" validate:"required,len=6,numeric"`
}

type CreateTempPhoneInput struct {
	UserID int64  `json:"user_id" validate:"required,min=1"`
	PhNo   string `json:"ph_no" validate:"required,min=10,max=20"`
	Otp    string `json:"otp" validate:"required,len=6,numeric"`
}

type UpdateTempPhoneInput struct {
	PhNo *string `json:"ph_no" validate:"omitempty,min=10,max=20"`
	Otp  *string `json:"otp" validate:"omitempty,len=6,numeric"`
}

type VerifyTempPhoneInput struct {
	UserID int64  `json:"user_id" validate:"required,min=1"`
	PhNo   string `json:"ph_no" validate:"required,min=10,max=20"`
	Otp    string `json:"otp" validate:"required,len=6,numeric"`
}
