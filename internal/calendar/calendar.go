// package calendar renders confirmed appointments as Google Calendar links
// and iCalendar (.ics) files
package calendar

import (
	"fmt"
	"net/url"
	"os"
	"runtime"
	"time"

	"salonctl/internal/models"
	"salonctl/internal/shared"
)

// Event is a confirmed appointment resolved to calendar fields.
type Event struct {
	Summary  string
	Details  string
	Location string
	Start    time.Time
	End      time.Time
}

// NewEvent builds an Event from a confirmed booking.
//
// Missing pieces fall back to the category's French defaults: a generic
// summary when the service label is unknown, and "Non spécifié(e)" when the
// provider's name could not be resolved. The appointment time is interpreted
// in loc.
func NewEvent(confirmed models.Confirmed, salonLocation string, loc *time.Location) (Event, error) {
	if loc == nil {
		loc = time.Local
	}

	start, err := confirmed.Start(loc)
	if err != nil {
		return Event{}, fmt.Errorf("failed to parse appointment time: %w", err)
	}
	end, err := confirmed.End(loc)
	if err != nil {
		return Event{}, fmt.Errorf("failed to parse appointment time: %w", err)
	}

	summary := confirmed.OfferingLabel
	provider := confirmed.ProviderName
	var details string

	if confirmed.Category == models.Esthetician {
		if summary == "" {
			summary = "Rendez-vous beauté"
		}
		if provider == "" {
			provider = "Non spécifiée"
		}
		details = "Esthéticienne: " + provider
	} else {
		if summary == "" {
			summary = "Rendez-vous coiffure"
		}
		if provider == "" {
			provider = "Non spécifié"
		}
		details = "Coiffeur: " + provider
	}

	return Event{
		Summary:  summary,
		Details:  details,
		Location: salonLocation,
		Start:    start,
		End:      end,
	}, nil
}

// googleDate renders a time in Google Calendar's compact UTC form.
func googleDate(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// GoogleLink returns the prefilled event-creation URL for Google Calendar.
func (e Event) GoogleLink() string {
	return fmt.Sprintf(
		"https://calendar.google.com/calendar/render?action=TEMPLATE&text=%s&dates=%s/%s&details=%s&location=%s",
		url.QueryEscape(e.Summary),
		googleDate(e.Start),
		googleDate(e.End),
		url.QueryEscape(e.Details),
		url.QueryEscape(e.Location),
	)
}

// ICS renders the event as a single-event iCalendar document.
func (e Event) ICS() []byte {
	content := fmt.Sprintf(`BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Salon App//FR
BEGIN:VEVENT
SUMMARY:%s
DTSTART:%s
DTEND:%s
DESCRIPTION:%s
LOCATION:%s
END:VEVENT
END:VCALENDAR`,
		e.Summary,
		googleDate(e.Start),
		googleDate(e.End),
		e.Details,
		e.Location,
	)
	return []byte(content)
}

// Filename returns the conventional .ics name for the category.
func Filename(cat models.Category) string {
	if cat == models.Esthetician {
		return "rendez-vous-beaute.ics"
	}
	return "rendez-vous-coiffure.ics"
}

// WriteICS writes the event's iCalendar document to path.
func WriteICS(e Event, path string) error {
	if err := os.WriteFile(path, e.ICS(), 0o644); err != nil {
		return fmt.Errorf("failed to write calendar file: %w", err)
	}
	return nil
}

// Deliver writes the .ics file and, on macOS, hands it straight to the
// system calendar.
func Deliver(e Event, path string) error {
	if err := WriteICS(e, path); err != nil {
		return err
	}
	if runtime.GOOS == "darwin" {
		return shared.OpenBrowser(path)
	}
	return nil
}
