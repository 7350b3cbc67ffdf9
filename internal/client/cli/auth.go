package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dcastano/authd/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account.
//
// On success it prints "Success!" and returns nil. The password byte slice
// is wiped before returning. Any I/O or service error is logged and returned
// unchanged.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Register(ctx, email, string(password)); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	printlnFn("Success!")
	return nil
}

// Login prompts the user for credentials and tries to authenticate. On
// success the API client holds the token pair and the prompt shows the email.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Login(ctx, email, string(password)); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.userName = email
	log.Printf("Login successful")
	return nil
}

// Profile fetches and prints the current account.
func (a *App) Profile(ctx context.Context) error {
	profile, err := a.client.GetProfile(ctx)
	if err != nil {
		log.Printf("Profile request unsuccessful: %s", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("ID: %s\nEmail: %s", profile.ID, profile.Email))
	return nil
}

// ForgotPassword asks the server to start a password reset for an email.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.client.ForgotPassword(ctx, email); err != nil {
		log.Printf("Request unsuccessful: %s", err.Error())
		return err
	}

	printlnFn("If the email is registered, a reset link has been sent.")
	return nil
}

// ResetPassword redeems a reset token for a new password.
func (a *App) ResetPassword(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter reset token", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.ResetPassword(ctx, token, string(password)); err != nil {
		log.Printf("Reset unsuccessful: %s", err.Error())
		return err
	}

	printlnFn("Password updated.")
	return nil
}

// Logout revokes the current session token and clears the prompt status.
func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		log.Printf("Logout unsuccessful: %s", err.Error())
		return err
	}

	a.userName = ""
	printlnFn("Logged out.")
	return nil
}
