package models

import "time"

// User is the login identity row. The mobile number is the stable
// identifier carried in tokens so credential reissuance survives user_id
// renumbering.
type User struct {
	UserID       uint       `gorm:"primaryKey;column:user_id" json:"user_id"`
	FullName     string     `gorm:"not null" json:"full_name"`
	MobileNumber string     `gorm:"uniqueIndex;not null" json:"mobile_number"`
	PassKey      string     `gorm:"not null" json:"-"`
	UserType     UserRole   `gorm:"not null" json:"user_type"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	UpdatedTime  time.Time  `gorm:"autoUpdateTime" json:"updated_time"`
}

func (User) TableName() string { return "m_user_login" }

// UserProfile is the extended profile row created in signup step 2.
type UserProfile struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"uniqueIndex;not null;column:user_id" json:"user_id"`
	UserType         UserRole  `gorm:"not null" json:"user_type"`
	RegID            string    `gorm:"column:reg_id" json:"reg_id"`
	Age              int       `json:"age"`
	FullName         string    `json:"full_name"`
	Gender           string    `json:"gender"`
	VoterID          string    `gorm:"column:voter_id" json:"voter_id"`
	MobileNumber     string    `json:"mobile_number"`
	EmailID          *string   `gorm:"column:email_id" json:"email_id"`
	Address          string    `json:"address"`
	DivisionID       uint      `gorm:"column:division_id" json:"division_id"`
	DistrictID       uint      `gorm:"column:district_id" json:"district_id"`
	TehsilID         uint      `gorm:"column:tehsil_id" json:"tehsil_id"`
	BlockID          uint      `gorm:"column:block_id" json:"block_id"`
	EducationLevelID uint      `gorm:"column:education_level_id" json:"education_level_id"`
	ExperienceYears  int       `json:"experience_years"`
	ImagePath        *string   `json:"image_path"`
	VoterPath        *string   `json:"voter_path"`
	Source           string    `json:"source"`
	Status           string    `json:"status"`
	UpdatedDate      time.Time `gorm:"autoUpdateTime" json:"updated_date"`
	Sequence         int       `json:"sequence"`
}

func (UserProfile) TableName() string { return "m_user" }
