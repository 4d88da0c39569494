package shipping

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Address is a postal address in the shape carriers expect
type Address struct {
	Name    string
	Street1 string
	City    string
	State   string
	Zip     string
	Country string
	Phone   string
	Email   string
}

// Validate requires every field a recipient address needs
func (a Address) Validate() error {
	for _, v := range []string{a.Name, a.Street1, a.City, a.State, a.Zip, a.Country} {
		if strings.TrimSpace(v) == "" {
			return ErrAddressIncomplete
		}
	}
	return nil
}

// Parcel describes the package dimensions
type Parcel struct {
	Length       string
	Width        string
	Height       string
	DistanceUnit string
	Weight       string
	MassUnit     string
}

// DefaultParcel is the fixed 5×5×5 in, 2 lb box every order ships in
func DefaultParcel() Parcel {
	return Parcel{
		Length:       "5",
		Width:        "5",
		Height:       "5",
		DistanceUnit: "in",
		Weight:       "2",
		MassUnit:     "lb",
	}
}

// Rate is a carrier offer for a shipment
type Rate struct {
	ID            string
	Provider      string
	ServiceLevel  string
	Amount        decimal.Decimal
	Currency      string
	EstimatedDays int
}

// Label is the outcome of buying a rate
type Label struct {
	Status         string
	TrackingNumber string
	LabelURL       string
	TrackingURL    string
	Messages       []string
}

// LabelStatusSuccess is the status a carrier reports for a purchased label
const LabelStatusSuccess = "SUCCESS"

// Succeeded reports whether the carrier issued the label
func (l Label) Succeeded() bool {
	return l.Status == LabelStatusSuccess
}

// RateRequest asks the carrier for rates between two addresses
type RateRequest struct {
	From   Address
	To     Address
	Parcel Parcel
}

// Carrier is the port for external shipping providers
type Carrier interface {
	Name() MethodName
	GetRates(ctx context.Context, req RateRequest) ([]Rate, error)
	GetRate(ctx context.Context, rateID string) (*Rate, error)
	PurchaseLabel(ctx context.Context, rateID string) (*Label, error)
}
