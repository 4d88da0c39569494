package identity

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterInput contains the account credentials and profile of a new customer
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Profile  identity.ProfileDetails
}

// RegisterResult is returned after a successful registration
type RegisterResult struct {
	User    UserInfo
	Profile ProfileResponse
	Tokens  TokenResult
}

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	User   UserInfo
	Tokens TokenResult
}

// TokenResult is an issued access/refresh token pair
type TokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// UserInfo contains basic user information
type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	IsAdmin  bool      `json:"is_admin"`
}

// LogoutInput identifies the access token to revoke
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	// TokenTTL is the remaining lifetime of the token; the blacklist entry expires with it
	TokenTTL time.Duration
}

// ProfileResponse represents a profile in API responses
type ProfileResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	AddressLine1 string    `json:"address_line_1"`
	AddressLine2 string    `json:"address_line_2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToProfileResponse converts a domain profile
func ToProfileResponse(p *identity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PhoneNumber:  p.PhoneNumber,
		AddressLine1: p.Address.Line1(),
		AddressLine2: p.Address.Line2(),
		City:         p.Address.City(),
		State:        p.Address.State(),
		PostalCode:   p.Address.PostalCode(),
		Country:      p.Address.Country(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ProfilePatch carries a partial profile update; nil fields are left unchanged
type ProfilePatch struct {
	FirstName    *string
	LastName     *string
	PhoneNumber  *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	PostalCode   *string
	Country      *string
}

// ApplyTo overlays the set fields on details
func (p ProfilePatch) ApplyTo(details identity.ProfileDetails) identity.ProfileDetails {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&details.FirstName, p.FirstName)
	set(&details.LastName, p.LastName)
	set(&details.PhoneNumber, p.PhoneNumber)
	set(&details.AddressLine1, p.AddressLine1)
	set(&details.AddressLine2, p.AddressLine2)
	set(&details.City, p.City)
	set(&details.State, p.State)
	set(&details.PostalCode, p.PostalCode)
	set(&details.Country, p.Country)
	return details
}

func toTokenResult(accessToken, refreshToken string, accessExp, refreshExp time.Time, tokenType string) TokenResult {
	return TokenResult{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExp,
		RefreshTokenExpiresAt: refreshExp,
		TokenType:             tokenType,
	}
}

func toUserInfo(u *identity.User) UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin}
}
