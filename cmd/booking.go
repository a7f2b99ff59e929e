package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"salonctl/internal/calendar"
	"salonctl/internal/formatter"
	"salonctl/internal/models"
	"salonctl/internal/shared"
	"salonctl/internal/tasks"
)

// AvailabilitySlots lists open slots for one provider and date, lead-time
// filter included.
func (r *Runner) AvailabilitySlots(ctx context.Context, cmd *cli.Command) error {
	cat, err := parseCategory(cmd)
	if err != nil {
		return err
	}

	if err := r.flow.LoadCatalog(ctx, cat); err != nil {
		return err
	}
	if err := r.flow.SetDate(cmd.String("date")); err != nil {
		return err
	}
	if err := r.flow.SetProvider(ctx, cmd.String("provider")); err != nil {
		return err
	}

	slots := r.flow.Slots()

	if cmd.Bool("json") {
		return r.writeJSON(slots, cmd.Bool("pretty"))
	}

	if warning := r.flow.Warning(); warning != "" {
		return r.writePlain("%s\n", warning)
	}
	for _, slot := range slots {
		if err := r.writePlain("%s\n", slot.Clock()); err != nil {
			return err
		}
	}
	return nil
}

// AvailabilityScan runs a concurrent availability scan over a date range.
func (r *Runner) AvailabilityScan(ctx context.Context, cmd *cli.Command) error {
	cat, err := parseCategory(cmd)
	if err != nil {
		return err
	}

	opts := tasks.ScanOpts{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	}

	var progress chan tasks.ProgressUpdate
	done := make(chan struct{})
	if cmd.Bool("progress") {
		progress = make(chan tasks.ProgressUpdate, 50)
		go func() {
			defer close(done)
			for update := range progress {
				r.logger.Info(update.Message, "phase", update.Phase.String())
			}
		}()
	} else {
		close(done)
	}

	result, err := r.engine.Scan(ctx, progress, cat, cmd.String("provider"), cmd.String("from"), cmd.String("to"), opts)
	if progress != nil {
		close(progress)
		<-done
	}
	if err != nil {
		return err
	}

	var data []byte
	if cmd.Bool("csv") {
		data, err = formatter.ScanToCSV(result)
	} else {
		data, err = formatter.ScanToText(result)
	}
	if err != nil {
		return err
	}

	return r.writePlain("%s", data)
}

// Book walks the booking flow in one shot from flags.
func (r *Runner) Book(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAuth(); err != nil {
		return err
	}

	cat, err := parseCategory(cmd)
	if err != nil {
		return err
	}

	sess, err := r.store.Current()
	if err != nil {
		return err
	}
	r.flow.SetEmail(sess.Email)

	if err := r.flow.LoadCatalog(ctx, cat); err != nil {
		return err
	}
	if label := cmd.String("type"); label != "" {
		// An already known offering can be passed whole
		r.flow.SeedOffering(models.Offering{
			ID:              int(cmd.Int("service")),
			Category:        cat,
			Label:           label,
			DurationMinutes: int(cmd.Int("duration")),
			Price:           int(cmd.Int("price")),
		})
	} else if err := r.flow.SetOffering(int(cmd.Int("service"))); err != nil {
		return err
	}
	if err := r.flow.SetDate(cmd.String("date")); err != nil {
		return err
	}
	if err := r.flow.SetProvider(ctx, cmd.String("provider")); err != nil {
		return err
	}
	if err := r.flow.SetTime(cmd.String("time")); err != nil {
		if warning := r.flow.Warning(); warning != "" {
			r.logger.Warn(warning)
		}
		return err
	}

	if err := r.flow.Submit(ctx); err != nil {
		return err
	}

	if err := r.writePlain("✓ Rendez-vous pris avec succès !\n"); err != nil {
		return err
	}

	confirmed := r.flow.Confirmed()
	switch cmd.String("calendar") {
	case "":
		r.flow.AnswerCalendar(false)
		return nil
	case "google":
		r.flow.AnswerCalendar(true)
		event, err := calendar.NewEvent(*confirmed, r.config.API.SalonLocation, time.Local)
		if err != nil {
			return err
		}
		if err := shared.OpenBrowser(event.GoogleLink()); err != nil {
			return err
		}
		r.flow.CalendarDone()
		return r.writePlain("✓ Page Google Calendar ouverte\n")
	case "ics":
		r.flow.AnswerCalendar(true)
		event, err := calendar.NewEvent(*confirmed, r.config.API.SalonLocation, time.Local)
		if err != nil {
			return err
		}
		path := calendar.Filename(confirmed.Category)
		if err := calendar.Deliver(event, path); err != nil {
			return err
		}
		r.flow.CalendarDone()
		return r.writePlain("✓ Fichier de calendrier enregistré: %s\n", path)
	default:
		return fmt.Errorf("%w: unknown calendar target %q", shared.ErrInvalidArgument, cmd.String("calendar"))
	}
}
