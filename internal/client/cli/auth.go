package cli

import (
	"context"
	"time"

	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/client/services"
	"github.com/colisroute/colis/internal/common"
)

// Indirections over the interactive input helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getChoice     = GetChoice
)

var roleOptions = []string{"Sender", "Transporter"}

func roleFromChoice(i int) common.Role {
	if i == 1 {
		return common.RoleTransporter
	}
	return common.RoleSender
}

// Login prompts for email and password and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	st, err := a.auth.Login(ctx, services.LoginForm{Email: email, Password: string(password)})
	if err != nil {
		return a.fail(ctx, "login failed", err)
	}
	a.announce(st)
	return nil
}

// Register walks the signup form. Transporters are also asked for their
// phone number and vehicle.
func (a *App) Register(ctx context.Context) error {
	choice, err := getChoice(a.reader, "Register as", roleOptions, a.out)
	if err != nil {
		return a.fail(ctx, "register", err)
	}
	form := services.RegisterForm{Role: roleFromChoice(choice)}

	name, err := getSimpleText(a.reader, "Enter your full name", a.out)
	if err != nil {
		return err
	}
	form.FirstName, form.LastName = services.SplitName(name)

	if form.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	form.Password, form.ConfirmPassword = string(password), string(confirm)

	if form.Role == common.RoleTransporter {
		d := &services.TransporterDetails{}
		if d.Phone, err = getSimpleText(a.reader, "Enter phone number", a.out); err != nil {
			return err
		}
		v, err := getChoice(a.reader, "Vehicle type", models.VehicleTypes, a.out)
		if err != nil {
			return a.fail(ctx, "register", err)
		}
		d.VehicleType = models.VehicleTypes[v]
		if d.LicensePlate, err = getSimpleText(a.reader, "Enter licence plate", a.out); err != nil {
			return err
		}
		form.Transporter = d
	}

	st, err := a.auth.Register(ctx, form)
	if err != nil {
		return a.fail(ctx, "register failed", err)
	}
	a.say("Account created!")
	a.announce(st)
	return nil
}

// GoogleLogin exchanges a Google ID token obtained outside the terminal.
func (a *App) GoogleLogin(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Paste your Google ID token", a.out)
	if err != nil {
		return err
	}
	st, err := a.auth.GoogleSignIn(ctx, token)
	if err != nil {
		return a.fail(ctx, "google sign-in failed", err)
	}
	a.announce(st)
	return nil
}

// SelectRole finishes a pending Google signup.
func (a *App) SelectRole(ctx context.Context) error {
	if p := a.auth.State().Pending; p != nil {
		a.say("Signing up", p.Email)
	}
	choice, err := getChoice(a.reader, "Choose your role", roleOptions, a.out)
	if err != nil {
		return a.fail(ctx, "role selection", err)
	}
	st, err := a.auth.CompleteRoleSelection(ctx, roleFromChoice(choice))
	if err != nil {
		return a.fail(ctx, "role selection failed", err)
	}
	a.announce(st)
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	sess, claims, err := a.auth.Whoami(ctx)
	if sess == nil {
		return a.fail(ctx, "whoami", err)
	}
	a.say("User:", sess.UserID, "Role:", sess.Role)
	if err != nil {
		a.say("Token could not be decoded")
		return nil
	}
	if claims.Subject != "" {
		a.say("Subject:", claims.Subject)
	}
	if !claims.ExpiresAt.IsZero() {
		state := "valid"
		if claims.Expired(time.Now()) {
			state = "expired"
		}
		a.say("Token expires:", claims.ExpiresAt.Local().Format(time.DateTime), "("+state+")")
	}
	return nil
}

// Logout always succeeds locally.
func (a *App) Logout(ctx context.Context) error {
	st := a.auth.Logout(ctx)
	a.say("Logged out.")
	a.announce(st)
	return nil
}
