package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/roster"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/store"
	"github.com/urfave/cli/v3"
)

// MembersRegister adds a member directly, already approved. Unlike the
// request/approve handshake this is the admin typing someone in by hand.
func (r *Runner) MembersRegister(ctx context.Context, cmd *cli.Command) error {
	role := models.RoleUser
	if cmd.Bool("admin") {
		role = models.RoleAdmin
	}

	return r.withStore(func(st *store.Store) error {
		if _, err := r.signedInAdmin(st); err != nil {
			return err
		}

		users, err := st.LoadUsers()
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		updated, err := roster.Register(roster.Profile{
			Name:     cmd.String("name"),
			Email:    cmd.String("email"),
			Whatsapp: cmd.String("whatsapp"),
			Password: cmd.String("password"),
		}, role, users)
		if err != nil {
			return err
		}

		if err := st.SaveUsers(updated); err != nil {
			return fmt.Errorf("failed to save roster: %w", err)
		}

		member := updated[len(updated)-1]
		r.logger.Info("member registered", "member", member.LoginKey(), "role", member.Role)
		return r.writePlain("✓ Registered %s <%s> as %s\n", member.Name, member.LoginKey(), member.Role)
	})
}

// MembersList prints the roster.
func (r *Runner) MembersList(ctx context.Context, cmd *cli.Command) error {
	return r.withStore(func(st *store.Store) error {
		if _, err := r.signedInAdmin(st); err != nil {
			return err
		}

		users, err := st.LoadUsers()
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		if cmd.Bool("json") {
			listed := make([]models.User, len(users))
			for i, u := range users {
				u.Password = ""
				listed[i] = u
			}
			return r.writeJSON(listed, cmd.Bool("pretty"))
		}

		r.writePlainHeader(fmt.Sprintf("Members (%d)", len(users)))
		for _, u := range users {
			status := ""
			if !u.IsApproved {
				status = "  (pending)"
			}
			r.writePlain("%s  %s <%s> %s%s\n", u.ID, u.Name, u.LoginKey(), u.Role, status)
		}
		return nil
	})
}

// MembersRemove deletes a member by login key or ID. The primary admin
// cannot be removed.
func (r *Runner) MembersRemove(ctx context.Context, cmd *cli.Command) error {
	ref := strings.TrimSpace(cmd.StringArg("member"))
	if ref == "" {
		return fmt.Errorf("%w: member login or id", shared.ErrMissingArgument)
	}

	return r.withStore(func(st *store.Store) error {
		if _, err := r.signedInAdmin(st); err != nil {
			return err
		}

		users, err := st.LoadUsers()
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		member, err := findMember(users, ref)
		if err != nil {
			return err
		}

		remaining, err := roster.Delete(users, member.ID)
		if err != nil {
			return err
		}

		if err := st.SaveUsers(remaining); err != nil {
			return fmt.Errorf("failed to save roster: %w", err)
		}

		r.logger.Info("member removed", "member", member.LoginKey())
		return r.writePlain("✓ Removed %s <%s>\n", member.Name, member.LoginKey())
	})
}

// MembersResetPassword sets a new password for any member.
func (r *Runner) MembersResetPassword(ctx context.Context, cmd *cli.Command) error {
	ref := strings.TrimSpace(cmd.StringArg("member"))
	if ref == "" {
		return fmt.Errorf("%w: member login or id", shared.ErrMissingArgument)
	}

	return r.withStore(func(st *store.Store) error {
		if _, err := r.signedInAdmin(st); err != nil {
			return err
		}

		users, err := st.LoadUsers()
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		member, err := findMember(users, ref)
		if err != nil {
			return err
		}

		updated, err := roster.ResetPassword(users, member.ID, cmd.String("password"))
		if err != nil {
			return err
		}

		if err := st.SaveUsers(updated); err != nil {
			return fmt.Errorf("failed to save roster: %w", err)
		}

		return r.writePlain("✓ Password updated for %s\n", member.LoginKey())
	})
}

// Passwd changes the signed-in member's own password and refreshes the
// stored session so the next login uses the new one.
func (r *Runner) Passwd(ctx context.Context, cmd *cli.Command) error {
	return r.withStore(func(st *store.Store) error {
		user, err := r.signedIn(st)
		if err != nil {
			return err
		}

		users, err := st.LoadUsers()
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		updated, err := roster.ResetPassword(users, user.ID, cmd.String("password"))
		if err != nil {
			return err
		}

		if err := st.SaveUsers(updated); err != nil {
			return fmt.Errorf("failed to save roster: %w", err)
		}

		user.Password = strings.TrimSpace(cmd.String("password"))
		if err := st.SaveSession(user); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		return r.writePlain("✓ Password changed\n")
	})
}

// findMember resolves a login key or raw ID to a roster entry.
func findMember(users []models.User, ref string) (models.User, error) {
	if member, ok := roster.FindByLoginKey(users, ref); ok {
		return member, nil
	}
	for _, u := range users {
		if u.ID == ref {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("%w: %s", shared.ErrUserNotFound, ref)
}
