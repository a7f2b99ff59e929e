package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"salonctl/internal/formatter"
	"salonctl/internal/shared"
)

// ProfileShow prints the authenticated client's profile.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(); err != nil {
		return err
	}

	profile, err := r.client.Me(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(profile, cmd.Bool("pretty"))
	}

	if err := r.writePlain("Nom: %s %s\n", profile.FirstName, profile.LastName); err != nil {
		return err
	}
	if err := r.writePlain("Email: %s\n", profile.Email); err != nil {
		return err
	}
	return r.writePlain("Téléphone: %s\n", profile.Phone)
}

// ProfileUpdate applies the given flags on top of the stored profile and
// pushes the result to the backend.
func (r *Runner) ProfileUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(); err != nil {
		return err
	}

	profile, err := r.client.Me(ctx)
	if err != nil {
		return err
	}

	changed := false
	if v := cmd.String("firstname"); v != "" {
		profile.FirstName = v
		changed = true
	}
	if v := cmd.String("lastname"); v != "" {
		profile.LastName = v
		changed = true
	}
	if v := cmd.String("phone"); v != "" {
		profile.Phone = v
		changed = true
	}
	if !changed {
		return fmt.Errorf("%w: nothing to update, pass --firstname, --lastname or --phone", shared.ErrMissingArgument)
	}

	if err := r.client.UpdateClient(ctx, *profile); err != nil {
		return err
	}
	return r.writePlainln("✓ Profil mis à jour")
}

// AppointmentHistory lists completed appointments, optionally exporting them
// to a file.
func (r *Runner) AppointmentHistory(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(); err != nil {
		return err
	}

	history, err := r.engine.History(ctx, nil)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(history, cmd.Bool("pretty"))
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteHistoryExport(history, cmd.String("format"), path); err != nil {
			return err
		}
		return r.writePlain("✓ Historique exporté vers %s\n", path)
	}

	data, err := formatter.HistoryToText(history)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

// AppointmentCheckIn performs the arrival check-in, defaulting to the stored
// session's email.
func (r *Runner) AppointmentCheckIn(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	if email == "" {
		if err := r.requireAuth(); err != nil {
			return err
		}
		sess, err := r.store.Current()
		if err != nil {
			return err
		}
		email = sess.Email
	}

	if err := r.client.CheckIn(ctx, email); err != nil {
		return err
	}
	return r.writePlain("✓ Enregistrement effectué pour %s\n", email)
}
