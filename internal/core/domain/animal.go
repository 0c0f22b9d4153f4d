package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

const StatusAvailable = "Available"

var ErrAnimalNotFound = errors.New("animal not found")
var ErrAnimalInvalid = errors.New("name and breed are required")
var ErrInvalidID = errors.New("invalid id")

// GeoPoint is a GeoJSON Point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

// NewGeoPoint returns a Point when both coordinates are finite numbers,
// nil otherwise. Callers drop the location rather than store garbage.
func NewGeoPoint(lng, lat float64) *GeoPoint {
	if math.IsNaN(lng) || math.IsInf(lng, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return nil
	}
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Animal is a rescue animal record available for adoption.
type Animal struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Sex         string    `json:"sex,omitempty"`
	AgeWeeks    *int      `json:"age_weeks,omitempty"`
	RescueType  string    `json:"rescue_type,omitempty"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	Location    *GeoPoint `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AnimalPatch is a partial update. Nil fields are left unchanged.
type AnimalPatch struct {
	Name        *string
	Breed       *string
	Sex         *string
	AgeWeeks    *int
	RescueType  *string
	Status      *string
	Description *string
	Location    *GeoPoint
}

// Normalize trims the string fields that are present. A patch that blanks
// out name or breed is rejected.
func (p *AnimalPatch) Normalize() error {
	for _, f := range []*string{p.Name, p.Breed, p.Sex, p.RescueType, p.Status, p.Description} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
	if (p.Name != nil && *p.Name == "") || (p.Breed != nil && *p.Breed == "") {
		return ErrAnimalInvalid
	}
	return nil
}

// Normalize trims string fields, defaults the status, and validates the
// required fields.
func (a *Animal) Normalize() error {
	a.Name = strings.TrimSpace(a.Name)
	a.Breed = strings.TrimSpace(a.Breed)
	a.Sex = strings.TrimSpace(a.Sex)
	a.RescueType = strings.TrimSpace(a.RescueType)
	a.Status = strings.TrimSpace(a.Status)
	a.Description = strings.TrimSpace(a.Description)
	if a.Status == "" {
		a.Status = StatusAvailable
	}
	if a.Name == "" || a.Breed == "" {
		return ErrAnimalInvalid
	}
	return nil
}
