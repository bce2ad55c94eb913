package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focuslog/internal/api"
	"github.com/charmbracelet/huh"
)

// loginInput collects what the login and register flows need.
type loginInput struct {
	APIURL   string
	Username string
	Password string
}

func (in loginInput) complete() bool {
	return in.APIURL != "" && in.Username != "" && in.Password != ""
}

// missing names the first empty field as its flag.
func (in loginInput) missing() string {
	switch {
	case in.APIURL == "":
		return "--url"
	case in.Username == "":
		return "--username"
	case in.Password == "":
		return "--password"
	}
	return ""
}

func validateAPIURL(s string) error {
	_, err := api.ValidateBaseURL(s)
	return err
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// loginForm returns a themed form that fills the empty fields of in.
func loginForm(title string, in *loginInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API URL").
				Placeholder("https://focus.example.com/api").
				Value(&in.APIURL).
				Validate(validateAPIURL),
			huh.NewInput().
				Title("Username").
				Value(&in.Username).
				Validate(validateRequired("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&in.Password).
				Validate(validateRequired("password")),
		).Title(title),
	).WithTheme(focuslogHuhTheme()).WithShowHelp(false)
}
