package models

import (
	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// UserModel is the persistence model for the User aggregate
type UserModel struct {
	AggregateModel
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email        string `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	IsAdmin      bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		IsAdmin:           m.IsAdmin,
	}
}

// UserModelFromDomain creates a model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}

// ProfileModel is the persistence model for the Profile aggregate.
// Each user has at most one profile.
type ProfileModel struct {
	AggregateModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	FirstName    string    `gorm:"type:varchar(15);not null"`
	LastName     string    `gorm:"type:varchar(15);not null"`
	PhoneNumber  string    `gorm:"type:varchar(20);not null"`
	AddressLine1 string    `gorm:"column:address_line_1;type:varchar(100);not null"`
	AddressLine2 string    `gorm:"column:address_line_2;type:varchar(100)"`
	City         string    `gorm:"type:varchar(100);not null"`
	State        string    `gorm:"type:varchar(100)"`
	PostalCode   string    `gorm:"type:varchar(100)"`
	Country      string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts the model to a domain Profile
func (m *ProfileModel) ToDomain() *identity.Profile {
	return &identity.Profile{
		BaseAggregateRoot: m.ToAggregateRoot(),
		UserID:            m.UserID,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		PhoneNumber:       m.PhoneNumber,
		Address: valueobject.RestoreAddress(
			m.AddressLine1, m.AddressLine2, m.City, m.State, m.PostalCode, m.Country,
		),
	}
}

// ProfileModelFromDomain creates a model from a domain Profile
func ProfileModelFromDomain(p *identity.Profile) *ProfileModel {
	m := &ProfileModel{
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
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}
