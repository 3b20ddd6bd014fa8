package cli

import (
	"context"
	"errors"
	"fmt"

	"paprikasync/internal/client/api"
	"paprikasync/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. Domain errors from the
// service are rendered; the session stays anonymous on failure.
func (a *App) Login(ctx context.Context) {
	if a.session.LoggedIn() {
		fmt.Fprintln(a.out, "Already logged in.")
		return
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Could not read email.")
		return
	}
	password, err := getPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Could not read password.")
		return
	}

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		switch api.ErrorCode(err) {
		case api.CodeInvalidPassword:
			fmt.Fprintln(a.out, "Invalid password.")
		case api.CodeInvalidPaprikaLogin:
			fmt.Fprintln(a.out, "Paprika did not accept these credentials.")
		default:
			if errors.Is(err, common.ErrUnavailable) {
				fmt.Fprintln(a.out, "Server unavailable, try again later.")
			} else {
				fmt.Fprintf(a.out, "Login failed: %v\n", err)
			}
		}
		return
	}

	fmt.Fprintf(a.out, "Logged in as %s.\n", a.session.User().Name)
}

// Logout wipes the persisted session.
func (a *App) Logout(ctx context.Context) {
	if !a.session.LoggedIn() && !a.session.Refreshing() {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
}

// WhoAmI prints the current user record, including the partner code a
// counterpart needs for 'partner add'.
func (a *App) WhoAmI() {
	user := a.session.User()
	if user == nil {
		fmt.Fprintf(a.out, "Not logged in (%s).\n", a.session.State())
		return
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
	fmt.Fprintf(a.out, "Partner code: %s\n", user.PartnerCode)
}

// Rename updates the profile display name.
func (a *App) Rename(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	name, err := getSimpleText(a.reader, "Enter new name", a.out)
	if err != nil || name == "" {
		fmt.Fprintln(a.out, "Name unchanged.")
		return
	}
	if err := a.session.Rename(ctx, name); err != nil {
		fmt.Fprintf(a.out, "Rename failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "You are now %s.\n", a.session.User().Name)
}
