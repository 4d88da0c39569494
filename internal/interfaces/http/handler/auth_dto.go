package handler

import (
	appidentity "github.com/ecommerce/backend/internal/application/identity"
	"github.com/ecommerce/backend/internal/domain/identity"
)

// =====================
// Auth Request DTOs
// =====================

// ProfileFields are the personal and address fields of a profile
type ProfileFields struct {
	FirstName    string `json:"first_name" binding:"max=15"`
	LastName     string `json:"last_name" binding:"max=15"`
	PhoneNumber  string `json:"phone_number" binding:"max=30"`
	AddressLine1 string `json:"address_line_1" binding:"max=100"`
	AddressLine2 string `json:"address_line_2" binding:"max=100"`
	City         string `json:"city" binding:"max=100"`
	State        string `json:"state" binding:"max=100"`
	PostalCode   string `json:"postal_code" binding:"max=100"`
	Country      string `json:"country" binding:"max=100"`
}

func (p ProfileFields) details() identity.ProfileDetails {
	return identity.ProfileDetails{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PhoneNumber:  p.PhoneNumber,
		AddressLine1: p.AddressLine1,
		AddressLine2: p.AddressLine2,
		City:         p.City,
		State:        p.State,
		PostalCode:   p.PostalCode,
		Country:      p.Country,
	}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	ProfileFields
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required,max=128"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest is a full profile update; every field must be present
type UpdateProfileRequest struct {
	FirstName    string `json:"first_name" binding:"required,max=15"`
	LastName     string `json:"last_name" binding:"required,max=15"`
	PhoneNumber  string `json:"phone_number" binding:"required,max=30"`
	AddressLine1 string `json:"address_line_1" binding:"required,max=100"`
	AddressLine2 string `json:"address_line_2" binding:"max=100"`
	City         string `json:"city" binding:"required,max=100"`
	State        string `json:"state" binding:"required,max=100"`
	PostalCode   string `json:"postal_code" binding:"required,max=100"`
	Country      string `json:"country" binding:"required,max=100"`
}

func (r UpdateProfileRequest) details() identity.ProfileDetails {
	return ProfileFields(r).details()
}

// PatchProfileRequest is a partial profile update
type PatchProfileRequest struct {
	FirstName    *string `json:"first_name" binding:"omitempty,max=15"`
	LastName     *string `json:"last_name" binding:"omitempty,max=15"`
	PhoneNumber  *string `json:"phone_number" binding:"omitempty,max=30"`
	AddressLine1 *string `json:"address_line_1" binding:"omitempty,max=100"`
	AddressLine2 *string `json:"address_line_2" binding:"omitempty,max=100"`
	City         *string `json:"city" binding:"omitempty,max=100"`
	State        *string `json:"state" binding:"omitempty,max=100"`
	PostalCode   *string `json:"postal_code" binding:"omitempty,max=100"`
	Country      *string `json:"country" binding:"omitempty,max=100"`
}

func (r PatchProfileRequest) patch() appidentity.ProfilePatch {
	return appidentity.ProfilePatch(r)
}

// =====================
// Auth Response DTOs
// =====================

// RegisterResponse is the new account's profile, username and token pair
type RegisterResponse struct {
	appidentity.ProfileResponse
	Username string                  `json:"username"`
	Email    string                  `json:"email"`
	Token    appidentity.TokenResult `json:"token"`
}

// LoginResponse represents the response body for successful login
type LoginResponse struct {
	Token appidentity.TokenResult `json:"token"`
	User  appidentity.UserInfo    `json:"user"`
}

// RefreshTokenResponse represents the response body for successful token refresh
type RefreshTokenResponse struct {
	Token appidentity.TokenResult `json:"token"`
}
