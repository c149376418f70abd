package cli

import (
	"context"
	"testing"

	"github.com/colisroute/colis/internal/client/services"
	"github.com/colisroute/colis/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	ta := newTestApp(services.State{Kind: services.Unauthenticated})
	stubInputs(t, &inputs{texts: []string{"a@b.c"}, passwords: []string{"pw"}})

	require.NoError(t, ta.Login(context.Background()))
	assert.Equal(t, services.LoginForm{Email: "a@b.c", Password: "pw"}, ta.auth.loginForm)
	assert.Equal(t, services.PathSenderHome, ta.currentPath())
	assert.Contains(t, ta.out.String(), "Signed in as sender")
	assert.Equal(t, "(sender #7)", ta.getStatus())
}

func TestLogin_RejectedShowsMessage(t *testing.T) {
	ta := newTestApp(services.State{Kind: services.Unauthenticated})
	ta.auth.err = errRejected
	stubInputs(t, &inputs{texts: []string{"a@b.c"}, passwords: []string{"bad"}})

	require.Error(t, ta.Login(context.Background()))
	assert.Contains(t, ta.out.String(), "Error: Invalid email or password")
	assert.Equal(t, services.PathLogin, ta.currentPath())
}

func TestRegister_Transporter(t *testing.T) {
	ta := newTestApp(services.State{Kind: services.Unauthenticated})
	in := &inputs{
		texts:     []string{"Karim Ben Salah", "k@b.c", "+216 1", "123 TU 4567"},
		passwords: []string{"pw", "pw"},
		choices:   []int{1, 2},
	}
	stubInputs(t, in)

	require.NoError(t, ta.Register(context.Background()))

	f := ta.auth.regForm
	assert.Equal(t, common.RoleTransporter, f.Role)
	assert.Equal(t, "Karim", f.FirstName)
	assert.Equal(t, "Ben Salah", f.LastName)
	assert.Equal(t, "pw", f.ConfirmPassword)
	require.NotNil(t, f.Transporter)
	assert.Equal(t, services.TransporterDetails{Phone: "+216 1", VehicleType: "semi-truck", LicensePlate: "123 TU 4567"}, *f.Transporter)
	assert.Equal(t, services.PathTransporterHome, ta.currentPath())
	assert.Contains(t, ta.out.String(), "Account created!")
}

func TestRegister_SenderSkipsVehicle(t *testing.T) {
	ta := newTestApp(services.State{Kind: services.Unauthenticated})
	in := &inputs{texts: []string{"Amel", "a@b.c"}, passwords: []string{"pw", "pw"}, choices: []int{0}}
	stubInputs(t, in)

	require.NoError(t, ta.Register(context.Background()))
	assert.Nil(t, ta.auth.regForm.Transporter)
	assert.NotContains(t, in.prompts, "Vehicle type")
}

func TestGoogleThenRoleSelection(t *testing.T) {
	ta := newTestApp(services.State{Kind: services.Unauthenticated})
	stubInputs(t, &inputs{texts: []string{"id-token"}, choices: []int{0}})
	ctx := context.Background()

	require.NoError(t, ta.GoogleLogin(ctx))
	assert.Equal(t, services.PathRoleSelection, ta.currentPath())
	assert.Equal(t, "(choose role)", ta.getStatus())

	require.NoError(t, ta.SelectRole(ctx))
	assert.Equal(t, services.PathSenderHome, ta.currentPath())
	assert.Contains(t, ta.out.String(), "Signing up n@b.c")
}

func TestLogoutAndWhoami(t *testing.T) {
	ta := newTestApp(authed(common.RoleSender, 7))
	ctx := context.Background()

	require.NoError(t, ta.Whoami(ctx))
	assert.Contains(t, ta.out.String(), "User: 7 Role: SENDER")
	assert.Contains(t, ta.out.String(), "Subject: 7")

	require.NoError(t, ta.Logout(ctx))
	assert.True(t, ta.auth.loggedOut)
	assert.Equal(t, services.PathLogin, ta.currentPath())
}
