package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"salonctl/internal/models"
	"salonctl/internal/tasks"
)

func sampleHistory() *tasks.HistoryResult {
	return &tasks.HistoryResult{
		Appointments: []models.Appointment{
			{ID: 1, Time: "2025-05-01T09:00", ServiceLabel: "Coupe simple", Price: 5000, ProviderFirstName: "Jean", ProviderLastName: "Mbarga"},
			{ID: 2, Time: "2025-05-15T14:00", ServiceLabel: "Barbe", Price: 3000, ProviderFirstName: "Marc", ProviderLastName: "Fouda"},
		},
		TotalSpent: 8000,
	}
}

func TestHistoryExporters(t *testing.T) {
	t.Run("HistoryToCSV", func(t *testing.T) {
		data, err := HistoryToCSV(sampleHistory())
		if err != nil {
			t.Fatalf("HistoryToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "ID,Date,Service,Provider,Price") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "Coupe simple") {
			t.Errorf("CSV missing service label")
		}
		if !strings.Contains(output, "Jean Mbarga") {
			t.Errorf("CSV missing provider name")
		}
	})

	t.Run("HistoryToMarkdown", func(t *testing.T) {
		data, err := HistoryToMarkdown(sampleHistory())
		if err != nil {
			t.Fatalf("HistoryToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "# Historique des rendez-vous") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(output, "**Total**: 8000 FCFA") {
			t.Errorf("Markdown missing total, got: %s", output)
		}
		if !strings.Contains(output, "| 2025-05-15T14:00 | Barbe | Marc Fouda | 3000 |") {
			t.Errorf("Markdown missing table row, got: %s", output)
		}
	})

	t.Run("HistoryToText", func(t *testing.T) {
		data, err := HistoryToText(sampleHistory())
		if err != nil {
			t.Fatalf("HistoryToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Rendez-vous: 2") {
			t.Errorf("text missing count, got: %s", output)
		}
		if !strings.Contains(output, "1. 2025-05-01T09:00 - Coupe simple (Jean Mbarga) 5000 FCFA") {
			t.Errorf("text missing numbered row, got: %s", output)
		}
	})
}

func TestScanExporters(t *testing.T) {
	scan := &tasks.ScanResult{
		Category:   models.Barber,
		From:       "2025-06-02",
		To:         "2025-06-03",
		TotalSlots: 2,
		Days: []tasks.DayAvailability{
			{
				Date:     "2025-06-02",
				Provider: models.Provider{ID: "b1", FirstName: "Jean", LastName: "Mbarga"},
				Slots: []models.Slot{
					{StartTime: "2025-06-02T10:00", EndTime: "2025-06-02T10:30"},
					{StartTime: "2025-06-02T11:00", EndTime: "2025-06-02T11:30"},
				},
			},
			{
				Date:     "2025-06-03",
				Provider: models.Provider{ID: "b1", FirstName: "Jean", LastName: "Mbarga"},
			},
		},
	}

	t.Run("ScanToText", func(t *testing.T) {
		data, err := ScanToText(scan)
		if err != nil {
			t.Fatalf("ScanToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Disponibilités barber du 2025-06-02 au 2025-06-03") {
			t.Errorf("text missing header, got: %s", output)
		}
		if !strings.Contains(output, "2025-06-02  Jean Mbarga: 10:00 11:00") {
			t.Errorf("text missing slot line, got: %s", output)
		}
		if !strings.Contains(output, "2025-06-03  Jean Mbarga: aucun créneau") {
			t.Errorf("text missing empty-day line, got: %s", output)
		}
	})

	t.Run("ScanToCSV", func(t *testing.T) {
		data, err := ScanToCSV(scan)
		if err != nil {
			t.Fatalf("ScanToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Date,Provider,Start,End") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "2025-06-02,Jean Mbarga,2025-06-02T10:00,2025-06-02T10:30") {
			t.Errorf("CSV missing slot row, got: %s", output)
		}
	})
}

func TestWriteHistoryExport(t *testing.T) {
	t.Run("writes the chosen format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.csv")
		if err := WriteHistoryExport(sampleHistory(), "csv", path); err != nil {
			t.Fatalf("WriteHistoryExport failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read export: %v", err)
		}
		if !strings.Contains(string(data), "Coupe simple") {
			t.Errorf("unexpected export contents: %s", data)
		}
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.xml")
		if err := WriteHistoryExport(sampleHistory(), "xml", path); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}
