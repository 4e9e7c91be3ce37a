// Command console-login signs an admin in from the terminal and stores the
// token where the console server will find it on its next start.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/lenshive/admin-console/internal/app"
	"github.com/lenshive/admin-console/internal/infrastructure/config"
	"github.com/lenshive/admin-console/pkg/logger"
)

const loginTimeout = 30 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})

	email, password, err := prompt()
	if err != nil {
		fmt.Fprintf(os.Stderr, "login: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
	defer cancel()

	session, err := app.OpenSession(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "login: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	user, err := session.Guard.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "login: %v\n", err)
		session.Close()
		os.Exit(1)
	}
	fmt.Printf("Signed in as %s (%s). Token stored in the %s token store.\n", user.Email, user.Role, cfg.Tokens.Store)
}

// prompt reads the email from stdin and the password without echo when
// stdin is a terminal.
func prompt() (string, string, error) {
	in := bufio.NewReader(os.Stdin)

	fmt.Fprint(os.Stderr, "Email: ")
	email, err := in.ReadString('\n')
	if err != nil && email == "" {
		return "", "", fmt.Errorf("read email: %w", err)
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "", "", fmt.Errorf("email is required")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		return email, string(secret), nil
	}

	secret, err := in.ReadString('\n')
	if err != nil && secret == "" {
		return "", "", fmt.Errorf("read password: %w", err)
	}
	return email, strings.TrimRight(secret, "\r\n"), nil
}
