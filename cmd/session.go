package main

import (
	"context"
	"fmt"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/roster"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/store"
	"github.com/urfave/cli/v3"
)

// Login authenticates against the local roster and persists the session.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	loginKey := cmd.StringArg("login")
	password := cmd.StringArg("password")

	return r.withStore(func(st *store.Store) error {
		users, err := st.LoadUsers()
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		users = roster.EnsureAdmin(users)
		if err := st.SaveUsers(users); err != nil {
			return fmt.Errorf("failed to save roster: %w", err)
		}

		user, err := roster.Authenticate(loginKey, password, users)
		if err != nil {
			return err
		}

		if err := st.SaveSession(user); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		r.logger.Info("signed in", "user", user.LoginKey(), "role", user.Role)
		return r.writePlain("✓ Signed in as %s (%s)\n", user.Name, user.Role)
	})
}

// Logout clears the persisted session.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	return r.withStore(func(st *store.Store) error {
		if err := st.ClearSession(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return r.writePlain("✓ Signed out\n")
	})
}

// Whoami prints the signed-in member.
func (r *Runner) Whoami(ctx context.Context, cmd *cli.Command) error {
	return r.withStore(func(st *store.Store) error {
		user, err := r.signedIn(st)
		if err != nil {
			return err
		}

		if cmd.Bool("json") {
			user.Password = ""
			return r.writeJSON(user, cmd.Bool("pretty"))
		}

		approved := "approved"
		if !user.IsApproved {
			approved = "pending approval"
		}
		return r.writePlain("%s <%s> %s, %s\n", user.Name, user.LoginKey(), user.Role, approved)
	})
}
