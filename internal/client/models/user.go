package models

import "github.com/colisroute/colis/internal/common"

type User struct {
	ID              int64       `json:"id"`
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName,omitempty"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone,omitempty"`
	Role            common.Role `json:"role"`
	ProfileImageURL string      `json:"profileImageUrl,omitempty"`
}

// FullName joins first and last name, skipping an empty last name.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type UpdatePhoneRequest struct {
	Phone string `json:"phone"`
}

// Vehicle types offered at transporter signup.
const (
	VehicleVan       = "van"
	VehicleTruck     = "truck"
	VehicleSemiTruck = "semi-truck"
	VehicleCar       = "car"
)

// VehicleTypes lists the accepted vehicle types in display order.
var VehicleTypes = []string{VehicleVan, VehicleTruck, VehicleSemiTruck, VehicleCar}

type TransporterProfile struct {
	UserID       int64   `json:"userId"`
	DisplayName  string  `json:"displayName"`
	Bio          string  `json:"bio,omitempty"`
	PhotoURL     string  `json:"photoUrl,omitempty"`
	VehicleType  string  `json:"vehicleType,omitempty"`
	LicensePlate string  `json:"licensePlate,omitempty"`
	PricingPerKg float64 `json:"pricingPerKg,omitempty"`
}

type CreateTransporterProfileRequest struct {
	DisplayName  string  `json:"displayName"`
	Bio          string  `json:"bio,omitempty"`
	PricingPerKg float64 `json:"pricingPerKg,omitempty"`
}

// UpdateTransporterProfileRequest is a partial update; nil fields are left alone.
type UpdateTransporterProfileRequest struct {
	DisplayName  *string  `json:"displayName,omitempty"`
	Bio          *string  `json:"bio,omitempty"`
	VehicleType  *string  `json:"vehicleType,omitempty"`
	LicensePlate *string  `json:"licensePlate,omitempty"`
	PricingPerKg *float64 `json:"pricingPerKg,omitempty"`
}
