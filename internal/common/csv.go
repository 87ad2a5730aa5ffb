package common

import (
	"fmt"
	"net/http"

	"github.com/gocarina/gocsv"
)

// WriteCSV marshals rows (a slice of csv-tagged structs) as a downloadable file.
func WriteCSV(w http.ResponseWriter, filename string, rows any) {
	data, err := gocsv.MarshalBytes(rows)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL", "csv export failed", nil)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
