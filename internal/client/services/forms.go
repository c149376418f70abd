package services

import (
	"slices"
	"strings"

	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/common"
)

type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) Validate() error {
	if strings.TrimSpace(f.Email) == "" || f.Password == "" {
		return &FormError{Fields: []string{"email", "password"}, Message: "Please enter email and password"}
	}
	return nil
}

// TransporterDetails are the extra signup fields of a transporter.
type TransporterDetails struct {
	Phone        string
	VehicleType  string
	LicensePlate string
}

// RegisterForm is the signup form of both roles. LastName falls back to
// FirstName; Transporter is required for RoleTransporter.
type RegisterForm struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	Role            common.Role
	Transporter     *TransporterDetails
}

// Validate reports every missing field at once, the way the signup
// screens highlight them.
func (f RegisterForm) Validate() error {
	var missing []string
	if strings.TrimSpace(f.FirstName) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Email) == "" {
		missing = append(missing, "email")
	}
	if f.Password == "" {
		missing = append(missing, "password")
	}
	if f.Password != f.ConfirmPassword {
		missing = append(missing, "confirmPassword")
	}
	if !f.Role.Valid() {
		missing = append(missing, "role")
	}
	if f.Role == common.RoleTransporter {
		t := f.Transporter
		if t == nil {
			t = &TransporterDetails{}
		}
		if strings.TrimSpace(t.Phone) == "" {
			missing = append(missing, "phone")
		}
		if !slices.Contains(models.VehicleTypes, t.VehicleType) {
			missing = append(missing, "vehicleType")
		}
		if strings.TrimSpace(t.LicensePlate) == "" {
			missing = append(missing, "licensePlate")
		}
	}

	if len(missing) > 0 {
		return &FormError{Fields: missing, Message: "Missing fields: please fill all required information"}
	}
	return nil
}

func (f RegisterForm) request() models.SignUpRequest {
	first := strings.TrimSpace(f.FirstName)
	last := strings.TrimSpace(f.LastName)
	if last == "" {
		last = first
	}
	return models.SignUpRequest{
		FirstName: first,
		LastName:  last,
		Email:     strings.TrimSpace(f.Email),
		Password:  f.Password,
		Role:      f.Role,
	}
}

// SplitName splits a single "name" input into first name and the rest.
// The last name falls back to the first name.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	first = parts[0]
	last = strings.Join(parts[1:], " ")
	if last == "" {
		last = first
	}
	return first, last
}
