// package formatter provides functions to export appointment history and
// availability scans to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"salonctl/internal/tasks"
)

// HistoryToCSV converts a history result to CSV with columns: ID, Date, Service, Provider, Price
func HistoryToCSV(history *tasks.HistoryResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Date", "Service", "Provider", "Price"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range history.Appointments {
		record := []string{
			strconv.Itoa(row.ID),
			row.Time,
			row.ServiceLabel,
			row.ProviderFirstName + " " + row.ProviderLastName,
			strconv.Itoa(row.Price),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// HistoryToMarkdown converts a history result to a Markdown table with totals
func HistoryToMarkdown(history *tasks.HistoryResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Historique des rendez-vous\n\n")
	buf.WriteString(fmt.Sprintf("**Rendez-vous**: %d\n", len(history.Appointments)))
	buf.WriteString(fmt.Sprintf("**Total**: %d FCFA\n\n", history.TotalSpent))

	buf.WriteString("| Date | Service | Prestataire | Prix |\n")
	buf.WriteString("|------|---------|-------------|------|\n")
	for _, row := range history.Appointments {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s %s | %d |\n",
			row.Time, row.ServiceLabel, row.ProviderFirstName, row.ProviderLastName, row.Price))
	}

	return buf.Bytes(), nil
}

// HistoryToText converts a history result to plain text
func HistoryToText(history *tasks.HistoryResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Rendez-vous: %d\n", len(history.Appointments)))
	buf.WriteString(fmt.Sprintf("Total: %d FCFA\n\n", history.TotalSpent))

	for i, row := range history.Appointments {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%s %s) %d FCFA\n",
			i+1, row.Time, row.ServiceLabel, row.ProviderFirstName, row.ProviderLastName, row.Price))
	}

	return buf.Bytes(), nil
}

// ScanToText converts an availability scan to plain text, one line per
// provider-day
func ScanToText(scan *tasks.ScanResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Disponibilités %s du %s au %s\n", scan.Category, scan.From, scan.To))
	buf.WriteString(fmt.Sprintf("Créneaux: %d", scan.TotalSlots))
	if scan.FailedQueries > 0 {
		buf.WriteString(fmt.Sprintf(" (%d requêtes échouées)", scan.FailedQueries))
	}
	buf.WriteString("\n\n")

	for _, day := range scan.Days {
		if day.Error != nil {
			buf.WriteString(fmt.Sprintf("%s  %s: erreur (%v)\n", day.Date, day.Provider.DisplayName(), day.Error))
			continue
		}

		buf.WriteString(fmt.Sprintf("%s  %s:", day.Date, day.Provider.DisplayName()))
		if len(day.Slots) == 0 {
			buf.WriteString(" aucun créneau")
		}
		for _, slot := range day.Slots {
			buf.WriteString(" " + slot.Clock())
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ScanToCSV converts an availability scan to CSV with one row per slot
func ScanToCSV(scan *tasks.ScanResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Date", "Provider", "Start", "End"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, day := range scan.Days {
		for _, slot := range day.Slots {
			record := []string{day.Date, day.Provider.DisplayName(), slot.StartTime, slot.EndTime}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteHistoryExport writes a history result to path in the given format
// (csv, markdown or txt).
func WriteHistoryExport(history *tasks.HistoryResult, format, path string) error {
	var data []byte
	var err error

	switch format {
	case "csv":
		data, err = HistoryToCSV(history)
	case "markdown", "md":
		data, err = HistoryToMarkdown(history)
	case "txt", "text", "":
		data, err = HistoryToText(history)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
