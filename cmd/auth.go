package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"salonctl/internal/salon"
	"salonctl/internal/shared"
)

// AuthLogin authenticates and stores the issued session locally.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: local database not initialized, run 'salonctl setup'", shared.ErrServiceUnavailable)
	}

	creds := salon.Credentials{
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	}

	r.logger.Info("logging in", "email", creds.Email)

	sess, err := r.store.Login(ctx, creds)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Connecté en tant que %s (%s)\n", sess.Email, sess.Role)
}

// AuthRegister creates an account and stores the issued session locally.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: local database not initialized, run 'salonctl setup'", shared.ErrServiceUnavailable)
	}

	creds := salon.Credentials{
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	}

	r.logger.Info("creating account", "email", creds.Email)

	sess, err := r.store.Register(ctx, creds)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Compte créé pour %s\n", sess.Email)
}

// AuthLogout ends the session, clearing local state even when the backend
// call fails.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: local database not initialized, run 'salonctl setup'", shared.ErrServiceUnavailable)
	}

	if err := r.store.Logout(ctx); err != nil {
		return err
	}

	return r.writePlain("✓ Déconnecté\n")
}

// AuthStatus prints the stored session, if any.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return fmt.Errorf("%w: local database not initialized, run 'salonctl setup'", shared.ErrServiceUnavailable)
	}

	sess, err := r.store.Current()
	if err != nil {
		return err
	}
	if sess == nil {
		return r.writePlain("Non connecté\n")
	}

	return r.writePlain("Connecté: %s (%s)\n", sess.Email, sess.Role)
}

// AuthForgotPassword requests a password-reset email.
func (r *Runner) AuthForgotPassword(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")

	if err := r.client.ForgotPassword(ctx, email); err != nil {
		return err
	}

	return r.writePlain("✓ Email de réinitialisation envoyé à %s\n", email)
}

// AuthResetPassword sets a new password using a reset token.
func (r *Runner) AuthResetPassword(ctx context.Context, cmd *cli.Command) error {
	if err := r.client.ResetPassword(ctx, cmd.String("token"), cmd.String("password")); err != nil {
		return err
	}

	return r.writePlain("✓ Mot de passe réinitialisé\n")
}

// AuthChangePassword changes the password using a change token. The
// confirmation is compared locally before anything goes out.
func (r *Runner) AuthChangePassword(ctx context.Context, cmd *cli.Command) error {
	err := r.client.ChangePassword(ctx, cmd.String("token"), cmd.String("password"), cmd.String("confirm"))
	if err != nil {
		return err
	}

	return r.writePlain("✓ Mot de passe modifié\n")
}
