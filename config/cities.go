package config

import (
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"time"
)

// City is one row of the city-code table: a short alias plus the
// display name and the two routing codes the booking site expects.
type City struct {
	Alias   string
	Name    string
	ExpCode string
	EsrCode string
}

// CityTable maps an alias to its city row.
type CityTable map[string]City

// LoadCities reads the city-code table from a headered CSV file with
// columns City_alias, City, exp_code, esr_code.
func LoadCities(filename string) (CityTable, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open cities file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read cities file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("cities file %s is empty", filename)
	}

	index := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		index[col] = i
	}
	for _, col := range []string{"City_alias", "City", "exp_code", "esr_code"} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("cities file %s missing column %q", filename, col)
		}
	}

	table := make(CityTable, len(rows)-1)
	for _, row := range rows[1:] {
		city := City{
			Alias:   row[index["City_alias"]],
			Name:    row[index["City"]],
			ExpCode: row[index["exp_code"]],
			EsrCode: row[index["esr_code"]],
		}
		table[city.Alias] = city
	}
	return table, nil
}

// Lookup resolves a city alias.
func (t CityTable) Lookup(alias string) (City, error) {
	city, ok := t[alias]
	if !ok {
		return City{}, fmt.Errorf("unknown city alias %q (see cities file)", alias)
	}
	return city, nil
}

// RouteURL builds the booking-result URL for a from/to pair and date.
func RouteURL(baseURL string, from, to City, date time.Time) string {
	q := url.Values{}
	q.Set("from", from.Name)
	q.Set("from_exp", from.ExpCode)
	q.Set("from_esr", from.EsrCode)
	q.Set("to", to.Name)
	q.Set("to_exp", to.ExpCode)
	q.Set("to_esr", to.EsrCode)
	// Encode turns the spaces into the "+" separators the site expects.
	q.Set("front_date", date.Format("02 Jan 2006"))
	q.Set("date", date.Format("2006-01-02"))
	return baseURL + "/ru/route/?" + q.Encode()
}
