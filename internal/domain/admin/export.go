package admin

import (
	"encoding/csv"
	"io"

	"github.com/healthifyx/portal/internal/domain/records"
)

var exportHeader = []string{"Patient", "Doctor", "Diagnosis", "Treatment", "Date"}

// WriteRecordsCSV streams the filtered record listing as a spreadsheet
// download, one row per record in listing order.
func WriteRecordsCSV(w io.Writer, recs []records.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			personName(r.Patient),
			personName(r.Doctor),
			r.Diagnosis,
			r.Treatment,
			r.CreatedAt.Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func personName(p *records.PersonRef) string {
	if p == nil {
		return ""
	}
	return p.Name
}
