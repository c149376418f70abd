package cli

import (
	"context"
	"os"
	"strings"

	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/common"
)

// Profile shows the user's profile and, for transporters, the vehicle details.
func (a *App) Profile(ctx context.Context) error {
	id := a.userID()
	u, err := a.profiles.User(ctx, id)
	if err != nil {
		return a.fail(ctx, "get profile failed", err)
	}
	a.say("Name: ", u.FullName())
	a.say("Email:", u.Email)
	if u.Phone != "" {
		a.say("Phone:", u.Phone)
	}

	if a.role() != common.RoleTransporter {
		return nil
	}
	t, err := a.profiles.Transporter(ctx, id)
	if err != nil {
		return a.fail(ctx, "get transporter profile failed", err)
	}
	if t.VehicleType != "" {
		a.say("Vehicle:", t.VehicleType, t.LicensePlate)
	}
	if t.Bio != "" {
		a.say("Bio:", t.Bio)
	}
	if t.PhotoURL != "" {
		a.say("Photo:", t.PhotoURL)
	}
	return nil
}

func (a *App) Phone(ctx context.Context) error {
	phone, err := getSimpleText(a.reader, "New phone number", a.out)
	if err != nil {
		return err
	}
	if _, err := a.profiles.UpdatePhone(ctx, a.userID(), phone); err != nil {
		return a.fail(ctx, "update phone failed", err)
	}
	a.say("Phone number saved")
	return nil
}

func (a *App) Vehicle(ctx context.Context) error {
	v, err := getChoice(a.reader, "Vehicle type", models.VehicleTypes, a.out)
	if err != nil {
		return a.fail(ctx, "vehicle", err)
	}
	plate, err := getSimpleText(a.reader, "Licence plate", a.out)
	if err != nil {
		return err
	}
	plate = strings.TrimSpace(plate)

	vehicle := models.VehicleTypes[v]
	req := models.UpdateTransporterProfileRequest{VehicleType: &vehicle}
	if plate != "" {
		req.LicensePlate = &plate
	}
	if _, err := a.profiles.UpdateTransporter(ctx, a.userID(), req); err != nil {
		return a.fail(ctx, "update vehicle failed", err)
	}
	a.say("Vehicle saved")
	return nil
}

// Photo uploads an image file as the transporter's profile photo.
func (a *App) Photo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("photo <image file>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		a.say("Error:", err)
		return err
	}
	defer f.Close()

	t, err := a.profiles.UploadPhoto(ctx, a.userID(), f.Name(), f)
	if err != nil {
		return a.fail(ctx, "photo upload failed", err)
	}
	a.say("Photo uploaded:", t.PhotoURL)
	return nil
}
