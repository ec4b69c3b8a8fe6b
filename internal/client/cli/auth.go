package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// wipeBytes zeroes a password buffer once it is no longer needed.
func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Register prompts for a name, email and password and attempts to create a new
// account. Validation and backend errors are printed as-is; the service layer
// already phrases them for the user.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	if err := a.auth.Register(ctx, name, email, string(password)); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Account created. You can now login.")
	return nil
}

// Login prompts for credentials and authenticates against the backend.
// On success the session is persisted locally, so the next start of the
// program resumes it without asking again.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	user, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", user.Name))
	return nil
}

// Logout drops the in-memory session and wipes the stored credential.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}
