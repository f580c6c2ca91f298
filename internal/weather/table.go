package weather

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"time"
)

// Row is one flattened observation: an hourly sample merged with its parent
// day's date, daily aggregates and astronomy fields. Field values other than
// the timestamp are kept as the provider's strings.
type Row struct {
	DateTime         time.Time `json:"date_time"`
	MaxTempC         string    `json:"maxtempC"`
	MinTempC         string    `json:"mintempC"`
	TotalSnowCM      string    `json:"totalSnow_cm"`
	SunHour          string    `json:"sunHour"`
	UVIndex          string    `json:"uvIndex"`
	MoonIllumination string    `json:"moon_illumination"`
	Moonrise         string    `json:"moonrise"`
	Moonset          string    `json:"moonset"`
	Sunrise          string    `json:"sunrise"`
	Sunset           string    `json:"sunset"`
	DewPointC        string    `json:"DewPointC"`
	FeelsLikeC       string    `json:"FeelsLikeC"`
	HeatIndexC       string    `json:"HeatIndexC"`
	WindChillC       string    `json:"WindChillC"`
	WindGustKmph     string    `json:"WindGustKmph"`
	CloudCover       string    `json:"cloudcover"`
	Humidity         string    `json:"humidity"`
	PrecipMM         string    `json:"precipMM"`
	Pressure         string    `json:"pressure"`
	TempC            string    `json:"tempC"`
	Visibility       string    `json:"visibility"`
	WindDirDegree    string    `json:"winddirDegree"`
	WindSpeedKmph    string    `json:"windspeedKmph"`
	Location         string    `json:"location"`
}

// Columns returns the fixed output column set, in CSV order. Because rows
// are structs, every row carries exactly these fields; columns align by
// construction before concatenation.
func Columns() []string {
	return []string{
		"date_time",
		"maxtempC",
		"mintempC",
		"totalSnow_cm",
		"sunHour",
		"uvIndex",
		"moon_illumination",
		"moonrise",
		"moonset",
		"sunrise",
		"sunset",
		"DewPointC",
		"FeelsLikeC",
		"HeatIndexC",
		"WindChillC",
		"WindGustKmph",
		"cloudcover",
		"humidity",
		"precipMM",
		"pressure",
		"tempC",
		"visibility",
		"winddirDegree",
		"windspeedKmph",
		"location",
	}
}

const dateTimeLayout = "2006-01-02 15:04:05"

func (r Row) record() []string {
	return []string{
		r.DateTime.Format(dateTimeLayout),
		r.MaxTempC,
		r.MinTempC,
		r.TotalSnowCM,
		r.SunHour,
		r.UVIndex,
		r.MoonIllumination,
		r.Moonrise,
		r.Moonset,
		r.Sunrise,
		r.Sunset,
		r.DewPointC,
		r.FeelsLikeC,
		r.HeatIndexC,
		r.WindChillC,
		r.WindGustKmph,
		r.CloudCover,
		r.Humidity,
		r.PrecipMM,
		r.Pressure,
		r.TempC,
		r.Visibility,
		r.WindDirDegree,
		r.WindSpeedKmph,
		r.Location,
	}
}

// Table is the ordered result of one extraction across the full date range.
type Table struct {
	Location string `json:"location"`
	Rows     []Row  `json:"rows"`
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// WriteCSV writes the table to <dir>/<location>.csv, overwriting any
// existing file, and returns the written path. A failure is reported as a
// *WriteError; the table itself is unaffected.
func (t *Table) WriteCSV(dir string) (string, error) {
	path := filepath.Join(dir, t.Location+".csv")

	f, err := os.Create(path)
	if err != nil {
		return path, &WriteError{Path: path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns()); err != nil {
		return path, &WriteError{Path: path, Err: err}
	}
	for _, r := range t.Rows {
		if err := w.Write(r.record()); err != nil {
			return path, &WriteError{Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return path, &WriteError{Path: path, Err: err}
	}
	return path, nil
}
