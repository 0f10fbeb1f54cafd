// ABOUTME: Login, logout and demo-request CLI commands
// ABOUTME: Login persists credentials; failed attempts are reported to the backend
package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/1Lab-vibe/a1-client/models"
	"github.com/1Lab-vibe/a1-client/session"
)

// LoginCommand authenticates against the backend and stores the session.
func LoginCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Login email (prompted when omitted)")
	_ = fs.Parse(args)

	reader := bufio.NewReader(os.Stdin)
	if *email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
		*email = strings.TrimSpace(line)
	}
	if *email == "" {
		return fmt.Errorf("email is required")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	ctx := context.Background()
	res, err := app.API.Login(ctx, *email, string(password))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if !res.Access {
		app.API.ReportFailedLogin(ctx, *email)
		return fmt.Errorf("invalid email or password")
	}

	token := res.Token
	if token == "" {
		token = "ok"
	}
	companyID := res.CompanyID

	app.Sessions.Set(companyID, token, *email)
	if err := session.SaveStored(token, *email, companyID); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	fmt.Printf("✓ Logged in as %s\n", *email)
	return nil
}

// LogoutCommand clears the session, in memory and on disk.
func LogoutCommand(app *App, args []string) error {
	app.Sessions.Clear()
	if err := session.ClearStored(); err != nil {
		return fmt.Errorf("failed to clear stored session: %w", err)
	}
	fmt.Println("✓ Logged out")
	return nil
}

// DemoCommand submits the demo-access request form (public action).
func DemoCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	name := fs.String("name", "", "Your name (required)")
	email := fs.String("email", "", "Your email (required)")
	source := fs.String("source", "", "How you heard about us")
	region := fs.String("region", "", "Your region")
	_ = fs.Parse(args)

	if *name == "" || *email == "" {
		return fmt.Errorf("--name and --email are required")
	}

	res, err := app.API.RequestDemo(context.Background(), models.DemoRequest{
		Name:   *name,
		Email:  *email,
		Source: *source,
		Region: *region,
	})
	if err != nil {
		return fmt.Errorf("demo request failed: %w", err)
	}

	if res.Access == "access" {
		fmt.Println("✓ Demo access granted")
	} else {
		fmt.Println("Demo access denied")
	}
	if res.Message != "" {
		fmt.Println(res.Message)
	}
	return nil
}
