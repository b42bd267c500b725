package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ysadouski/rwsched/models"
)

func exportFixture() []models.TrainRecord {
	trainType := "interregional_economy"
	price := 12.0
	return []models.TrainRecord{
		{
			Number:         "617Б",
			TrainType:      &trainType,
			SellingAllowed: "true",
			DepartureTime:  "07:10",
			ArrivalTime:    "10:55",
			DepartureLabel: "07:10 Минск-Пассажирский",
			ArrivalLabel:   "10:55 Брест-Центральный",
			Tickets: []models.TicketOffer{
				{ClassName: "Сидячий", SeatsAvailable: "125", DisplayPrice: "12,00 BYN", MinPrice: &price},
				{ClassName: "Купе", SeatsAvailable: "8", DisplayPrice: models.NoPricePlaceholder},
			},
		},
		{
			Number:         "002Б",
			SellingAllowed: "false",
			DepartureTime:  "23:40",
			ArrivalTime:    "09:13",
			DepartureLabel: "23:40 Минск-Пассажирский",
			ArrivalLabel:   "09:13 Москва Белорусская",
		},
	}
}

func TestCSVWriterOneRowPerTicket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("new csv writer: %v", err)
	}

	if err := w.Write(exportFixture()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	// Header, two ticket rows for the first train, one blank-ticket
	// row for the ticketless train.
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if rows[0][0] != "number" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][5] != "Сидячий" || rows[1][8] != "12" {
		t.Errorf("first ticket row = %v", rows[1])
	}
	if rows[2][8] != "" {
		t.Errorf("unknown min price must stay blank, got %q", rows[2][8])
	}
	if rows[3][0] != "002Б" || rows[3][5] != "" {
		t.Errorf("ticketless train row = %v", rows[3])
	}
}

func TestJSONWriterOneLinePerTrain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	w, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("new json writer: %v", err)
	}

	if err := w.Write(exportFixture()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}

	var decoded models.TrainRecord
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("decode first line: %v", err)
	}
	if decoded.Number != "617Б" {
		t.Errorf("decoded number = %q", decoded.Number)
	}
	if len(decoded.Tickets) != 2 {
		t.Errorf("decoded tickets = %d, want 2", len(decoded.Tickets))
	}
	if decoded.Tickets[1].MinPrice != nil {
		t.Errorf("unknown min price must decode as nil")
	}
}

func TestDualWriterWritesBoth(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "report.csv")
	jsonPath := filepath.Join(dir, "report.json")

	w, err := NewDualWriter(csvPath, jsonPath)
	if err != nil {
		t.Fatalf("new dual writer: %v", err)
	}

	if err := w.Write(exportFixture()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	for _, path := range []string{csvPath, jsonPath} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}

// The check command closes its writer before validating the output,
// so Validate must still work on a closed writer.
func TestValidateAfterClose(t *testing.T) {
	dir := t.TempDir()

	writers := []struct {
		name string
		open func() (OutputWriter, error)
	}{
		{name: "csv", open: func() (OutputWriter, error) {
			return NewCSVWriter(filepath.Join(dir, "closed.csv"))
		}},
		{name: "json", open: func() (OutputWriter, error) {
			return NewJSONWriter(filepath.Join(dir, "closed.json"))
		}},
		{name: "dual", open: func() (OutputWriter, error) {
			return NewDualWriter(filepath.Join(dir, "closed_dual.csv"), filepath.Join(dir, "closed_dual.json"))
		}},
	}

	for _, tt := range writers {
		t.Run(tt.name, func(t *testing.T) {
			w, err := tt.open()
			if err != nil {
				t.Fatalf("new writer: %v", err)
			}
			if err := w.Write(exportFixture()); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}
			if err := w.Validate(); err != nil {
				t.Fatalf("validate after close: %v", err)
			}
		})
	}
}

func TestCSVWriterCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "report.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("new csv writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
}
