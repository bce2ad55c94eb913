package cli

import (
	"errors"
	"testing"

	"github.com/alexanderramin/focuslog/internal/auth"
	"github.com/alexanderramin/focuslog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withLoginForm(t *testing.T, fn func(title string, in *loginInput) error) {
	t.Helper()
	orig := runLoginForm
	runLoginForm = fn
	t.Cleanup(func() { runLoginForm = orig })
}

func TestAuthLogin_WithFlags(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "auth", "login",
		"--url", "https://focus.example.com/api", "--username", "ren", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as ren")
	assert.Contains(t, out, "remote")

	out, err = executeCmd(t, app, "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "https://focus.example.com/api")
	assert.Contains(t, out, "ren")
}

func TestAuthLogin_MissingFlagsNonInteractive(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "auth", "login", "--username", "ren")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--url is required")
}

func TestAuthLogin_InvalidURL(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "auth", "login", "--url", "not a url", "--username", "ren", "--password", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid API URL")
}

func TestAuthLogin_InteractiveFillsForm(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }

	var gotTitle string
	withLoginForm(t, func(title string, in *loginInput) error {
		gotTitle = title
		assert.Equal(t, "ren", in.Username)
		in.APIURL = "https://focus.example.com"
		in.Password = "pw"
		return nil
	})

	out, err := executeCmd(t, app, "auth", "login", "--username", "ren")
	require.NoError(t, err)
	assert.Equal(t, "Log in to the focus service", gotTitle)
	assert.Contains(t, out, "Logged in as ren")
}

func TestAuthLogin_FormAborted(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	aborted := errors.New("user aborted")
	withLoginForm(t, func(string, *loginInput) error { return aborted })

	_, err := executeCmd(t, app, "auth", "login")
	assert.ErrorIs(t, err, aborted)
}

func TestAuthRegister_ReusesStoredURL(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "auth", "login",
		"--url", "https://focus.example.com", "--username", "ren", "--password", "pw")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "auth", "register", "--username", "mio", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as mio")

	creds, err := app.Auth.Current()
	require.NoError(t, err)
	assert.Equal(t, "https://focus.example.com", creds.APIURL)
}

func TestAuthDebugAndLogout(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")

	out, err = executeCmd(t, app, "auth", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "Debug login active")

	creds, err := app.Auth.Current()
	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocal, creds.Mode)

	_, err = executeCmd(t, app, "auth", "logout")
	require.NoError(t, err)
	_, err = app.Auth.Current()
	assert.ErrorIs(t, err, auth.ErrNoCredentials)
}

func TestLoginInput(t *testing.T) {
	in := loginInput{}
	assert.False(t, in.complete())
	assert.Equal(t, "--url", in.missing())

	in.APIURL = "https://x.example"
	assert.Equal(t, "--username", in.missing())
	in.Username = "ren"
	assert.Equal(t, "--password", in.missing())
	in.Password = "pw"
	assert.True(t, in.complete())
	assert.Empty(t, in.missing())

	assert.Error(t, validateAPIURL(""))
	assert.NoError(t, validateAPIURL("http://localhost:8080"))
	assert.Error(t, validateRequired("username")("  "))
	assert.NotNil(t, loginForm("Log in", &in))
}
