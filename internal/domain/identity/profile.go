package identity

import (
	"regexp"
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

const maxPersonNameLength = 15

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\-\s().]{6,19}$`)

// ProfileDetails holds the personal and address data of a profile
type ProfileDetails struct {
	FirstName    string
	LastName     string
	PhoneNumber  string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// Profile carries the customer details attached one-to-one to a User
type Profile struct {
	shared.BaseAggregateRoot
	UserID      uuid.UUID
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     valueobject.Address
}

// NewProfile creates a profile for userID
func NewProfile(userID uuid.UUID, details ProfileDetails) (*Profile, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	profile := &Profile{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
	}
	if err := profile.apply(details); err != nil {
		return nil, err
	}
	return profile, nil
}

// Update replaces every profile field
func (p *Profile) Update(details ProfileDetails) error {
	if err := p.apply(details); err != nil {
		return err
	}
	p.IncrementVersion()
	return nil
}

// Details returns the current field values, used as the base of partial updates
func (p *Profile) Details() ProfileDetails {
	return ProfileDetails{
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
}

func (p *Profile) apply(details ProfileDetails) error {
	firstName := strings.TrimSpace(details.FirstName)
	lastName := strings.TrimSpace(details.LastName)
	phone := strings.TrimSpace(details.PhoneNumber)

	if err := validatePersonName("First name", firstName); err != nil {
		return err
	}
	if err := validatePersonName("Last name", lastName); err != nil {
		return err
	}
	if !phoneRegex.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number")
	}

	address, err := valueobject.NewAddress(
		details.AddressLine1, details.AddressLine2,
		details.City, details.State, details.PostalCode, details.Country,
	)
	if err != nil {
		return shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	p.FirstName = firstName
	p.LastName = lastName
	p.PhoneNumber = phone
	p.Address = address
	return nil
}

func validatePersonName(field, name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", field+" cannot be empty")
	}
	if len([]rune(name)) > maxPersonNameLength {
		return shared.NewDomainError("INVALID_NAME", field+" cannot exceed 15 characters")
	}
	return nil
}
