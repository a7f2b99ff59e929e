// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func categoryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "category",
		Aliases: []string{"cat"},
		Usage:   "Booking context: barber or esthetician",
		Value:   "barber",
	}
}

// setupCommand initializes the local database and config file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize database and run migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.SetupDatabase,
	}
}

// authCommand handles session lifecycle operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate against the salon backend",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Usage: "Account password", Required: true},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create a client account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Usage: "Account password", Required: true},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "End the current session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the stored session",
				Action: r.AuthStatus,
			},
			{
				Name:  "forgot-password",
				Usage: "Request a password-reset email",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "Account email", Required: true},
				},
				Action: r.AuthForgotPassword,
			},
			{
				Name:  "reset-password",
				Usage: "Set a new password with a reset token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "token", Usage: "Reset token from the email link", Required: true},
					&cli.StringFlag{Name: "password", Usage: "New password", Required: true},
				},
				Action: r.AuthResetPassword,
			},
			{
				Name:  "change-password",
				Usage: "Change the password with a change token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "token", Usage: "Change token", Required: true},
					&cli.StringFlag{Name: "password", Usage: "New password", Required: true},
					&cli.StringFlag{Name: "confirm", Usage: "New password again", Required: true},
				},
				Action: r.AuthChangePassword,
			},
		},
	}
}

// catalogCommand lists staff and services
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Browse staff and services",
		Commands: []*cli.Command{
			{
				Name:  "services",
				Usage: "List bookable services",
				Flags: []cli.Flag{
					categoryFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.CatalogServices,
			},
			{
				Name:  "providers",
				Usage: "List bookable staff",
				Flags: []cli.Flag{
					categoryFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.CatalogProviders,
			},
		},
	}
}

// availabilityCommand queries open slots
func availabilityCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "availability",
		Aliases: []string{"avail"},
		Usage:   "Query open slots",
		Commands: []*cli.Command{
			{
				Name:  "slots",
				Usage: "List slots for one provider and date",
				Flags: []cli.Flag{
					categoryFlag(),
					&cli.StringFlag{Name: "provider", Usage: "Provider ID", Required: true},
					&cli.StringFlag{Name: "date", Usage: "Date (2006-01-02)", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.AvailabilitySlots,
			},
			{
				Name:  "scan",
				Usage: "Scan a date range across providers",
				Flags: []cli.Flag{
					categoryFlag(),
					&cli.StringFlag{Name: "provider", Usage: "Provider ID (all when omitted)"},
					&cli.StringFlag{Name: "from", Usage: "First date (2006-01-02)", Required: true},
					&cli.StringFlag{Name: "to", Usage: "Last date (2006-01-02)", Required: true},
					&cli.IntFlag{Name: "workers", Usage: "Concurrent workers", Value: 4},
					&cli.FloatFlag{Name: "rate", Usage: "Requests per second", Value: 5},
					&cli.BoolFlag{Name: "csv", Usage: "Output CSV"},
					&cli.BoolFlag{Name: "progress", Usage: "Show progress updates"},
				},
				Action: r.AvailabilityScan,
			},
		},
	}
}

// bookCommand submits a booking in one shot
func bookCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "book",
		Usage: "Book an appointment",
		Flags: []cli.Flag{
			categoryFlag(),
			&cli.StringFlag{Name: "provider", Usage: "Provider ID", Required: true},
			&cli.IntFlag{Name: "service", Usage: "Service ID", Required: true},
			&cli.StringFlag{Name: "type", Usage: "Service label, skips the catalog lookup"},
			&cli.IntFlag{Name: "duration", Usage: "Service duration in minutes, with --type"},
			&cli.IntFlag{Name: "price", Usage: "Service price, with --type"},
			&cli.StringFlag{Name: "date", Usage: "Date (2006-01-02)", Required: true},
			&cli.StringFlag{Name: "time", Usage: "Start time (15:04)", Required: true},
			&cli.StringFlag{Name: "calendar", Usage: "Export after booking: google or ics"},
		},
		Action: r.Book,
	}
}

// appointmentCommand covers history and check-in
func appointmentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "appointment",
		Aliases: []string{"appt"},
		Usage:   "Appointment history and check-in",
		Commands: []*cli.Command{
			{
				Name:  "history",
				Usage: "List completed appointments",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
					&cli.StringFlag{Name: "format", Usage: "Export format: csv, markdown, txt"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Export file path"},
				},
				Action: r.AppointmentHistory,
			},
			{
				Name:  "checkin",
				Usage: "Check in for today's appointment",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "Client email (defaults to the session's)"},
				},
				Action: r.AppointmentCheckIn,
			},
		},
	}
}

// profileCommand reads and updates the client profile
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Client profile operations",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the authenticated profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.ProfileShow,
			},
			{
				Name:  "update",
				Usage: "Update profile fields",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "firstname", Usage: "First name"},
					&cli.StringFlag{Name: "lastname", Usage: "Last name"},
					&cli.StringFlag{Name: "phone", Usage: "Phone number"},
				},
				Action: r.ProfileUpdate,
			},
		},
	}
}

// tuiCommand launches the interactive booking interface
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Interactive booking interface",
		Action: r.TUI,
	}
}
