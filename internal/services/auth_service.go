package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/agrisetu/farmlink-backend/internal/apierr"
	"github.com/agrisetu/farmlink-backend/internal/models"
	"github.com/agrisetu/farmlink-backend/internal/utils"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupRequest struct {
	FullName     string `json:"full_name" validate:"required"`
	MobileNumber string `json:"mobile_number" validate:"required"`
	PassKey      string `json:"pass_key" validate:"required"`
	UserType     string `json:"user_type" validate:"required"`
}

type ProfileDetailsRequest struct {
	RegID            string  `json:"reg_id"`
	Age              int     `json:"age"`
	Gender           string  `json:"gender"`
	VoterID          string  `json:"voter_id"`
	EmailID          *string `json:"email_id"`
	Address          string  `json:"address"`
	DivisionID       uint    `json:"division_id"`
	DistrictID       uint    `json:"district_id"`
	TehsilID         uint    `json:"tehsil_id"`
	BlockID          uint    `json:"block_id"`
	EducationLevelID uint    `json:"education_level_id"`
	ExperienceYears  int     `json:"experience_years"`
	ImagePath        *string `json:"image_path"`
	VoterPath        *string `json:"voter_path"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required"`
	EmailID  string `json:"email_id" validate:"required"`
	Address  string `json:"address"`
}

// LoginResult bundles the signed token with the user fields the login
// response echoes back.
type LoginResult struct {
	Token string
	User  models.User
	Email *string
}

// UserView is the merged login + profile view returned by /auth/me.
type UserView struct {
	ID           uint    `json:"id"`
	FullName     string  `json:"full_name"`
	MobileNumber string  `json:"mobile_number"`
	UserType     string  `json:"user_type"`
	EmailID      *string `json:"email_id"`
	Address      string  `json:"address"`
	IsActive     bool    `json:"is_active"`
}

// AuthService covers signup, login and profile maintenance. Role is
// fixed at signup; no operation changes it afterwards.
type AuthService interface {
	Signup(req SignupRequest) (*models.User, error)
	CreateProfile(userID uint, req ProfileDetailsRequest) error
	Login(mobileNumber, passKey string) (*LoginResult, error)
	ResolveUser(mobileNumber string) (*models.User, error)
	GetUserView(userID uint) (*UserView, error)
	UpdateProfile(userID uint, req UpdateProfileRequest) (*UserView, error)
}

type authService struct {
	db            *gorm.DB
	authenticator *utils.JwtAuthenticator
	validator     *validator.Validate
}

func NewAuthService(db *gorm.DB, authenticator *utils.JwtAuthenticator) AuthService {
	return &authService{
		db:            db,
		authenticator: authenticator,
		validator:     validator.New(),
	}
}

// Signup creates the login row (signup step 1). Duplicate mobile numbers
// are refused.
func (s *authService) Signup(req SignupRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apierr.Validation(err)
	}

	role, err := models.ParseUserRole(req.UserType)
	if err != nil {
		return nil, apierr.Validation(err)
	}

	var existing models.User
	err = s.db.Where("mobile_number = ?", req.MobileNumber).First(&existing).Error
	if err == nil {
		return nil, apierr.Conflict(fmt.Errorf("mobile number %s already registered", req.MobileNumber))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.Internal(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.PassKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	user := models.User{
		FullName:     req.FullName,
		MobileNumber: req.MobileNumber,
		PassKey:      string(hashed),
		UserType:     role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	return &user, nil
}

// CreateProfile creates the extended profile row (signup step 2).
func (s *authService) CreateProfile(userID uint, req ProfileDetailsRequest) error {
	var login models.User
	if err := s.db.First(&login, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound(fmt.Errorf("signup step 1 not completed for user %d", userID))
		}
		return apierr.Internal(err)
	}

	regID := req.RegID
	if regID == "" {
		regID = fmt.Sprintf("%s%05d", login.UserType, userID)
	}
	gender := req.Gender
	if gender == "" {
		gender = "M"
	}

	profile := models.UserProfile{
		UserID:           userID,
		UserType:         login.UserType,
		RegID:            regID,
		Age:              req.Age,
		FullName:         login.FullName,
		Gender:           gender,
		VoterID:          req.VoterID,
		MobileNumber:     login.MobileNumber,
		EmailID:          req.EmailID,
		Address:          req.Address,
		DivisionID:       req.DivisionID,
		DistrictID:       req.DistrictID,
		TehsilID:         req.TehsilID,
		BlockID:          req.BlockID,
		EducationLevelID: req.EducationLevelID,
		ExperienceYears:  req.ExperienceYears,
		ImagePath:        req.ImagePath,
		VoterPath:        req.VoterPath,
		Source:           "Web",
		Status:           "Pending",
		Sequence:         1,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return apierr.Internal(err)
	}
	return nil
}

// Login checks the passkey against the stored bcrypt hash and issues a
// token. Unknown mobile and wrong passkey both come back as the same
// unauthenticated error.
func (s *authService) Login(mobileNumber, passKey string) (*LoginResult, error) {
	if mobileNumber == "" || passKey == "" {
		return nil, apierr.Validation(errors.New("mobile number and passkey required"))
	}

	var user models.User
	err := s.db.Where("mobile_number = ?", mobileNumber).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Unauthenticated(errors.New("invalid credentials"))
		}
		return nil, apierr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassKey), []byte(passKey)); err != nil {
		return nil, apierr.Unauthenticated(errors.New("invalid credentials"))
	}

	token, err := s.authenticator.IssueToken(user.MobileNumber, string(user.UserType))
	if err != nil {
		return nil, apierr.Internal(err)
	}

	now := time.Now()
	if err := s.db.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	user.LastLogin = &now

	var email *string
	var profile models.UserProfile
	if err := s.db.Where("user_id = ?", user.UserID).First(&profile).Error; err == nil {
		email = profile.EmailID
	}

	return &LoginResult{Token: token, User: user, Email: email}, nil
}

// ResolveUser looks up the account behind a token's mobile number.
func (s *authService) ResolveUser(mobileNumber string) (*models.User, error) {
	var user models.User
	err := s.db.Where("mobile_number = ?", mobileNumber).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Unauthenticated(fmt.Errorf("no user for mobile %s", mobileNumber))
		}
		return nil, apierr.Internal(err)
	}
	return &user, nil
}

// GetUserView joins the login and profile rows into the /auth/me shape.
func (s *authService) GetUserView(userID uint) (*UserView, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("user %d not found", userID))
		}
		return nil, apierr.Internal(err)
	}

	view := &UserView{
		ID:           user.UserID,
		FullName:     user.FullName,
		MobileNumber: user.MobileNumber,
		UserType:     string(user.UserType),
	}

	var profile models.UserProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		view.EmailID = profile.EmailID
		view.Address = profile.Address
		view.IsActive = profile.Status == "Active"
	}
	return view, nil
}

// UpdateProfile updates the editable fields: full_name on the login row,
// email and address on the profile row.
func (s *authService) UpdateProfile(userID uint, req UpdateProfileRequest) (*UserView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apierr.Validation(err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("user_id = ?", userID).
			Update("full_name", req.FullName).Error; err != nil {
			return err
		}
		return tx.Model(&models.UserProfile{}).Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"email_id": req.EmailID,
				"address":  req.Address,
			}).Error
	})
	if err != nil {
		return nil, apierr.Internal(err)
	}

	return s.GetUserView(userID)
}
