// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"fmt"
	"io"
	"os"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// Column names of an outcome table
const (
	ColTrial    = "Trial"
	ColResponse = "Response"
	ColRT       = "RT"
	ColDecision = "Decision"
	ColIn0      = "In0"
	ColIn1      = "In1"
)

// Schema returns the column layout of an outcome table.  Responses are
// stored as their file codes (True, False, NoResp).
func Schema() etable.Schema {
	return etable.Schema{
		{ColTrial, etensor.INT64, nil, nil},
		{ColResponse, etensor.STRING, nil, nil},
		{ColRT, etensor.FLOAT64, nil, nil},
		{ColDecision, etensor.INT64, nil, nil},
		{ColIn0, etensor.INT64, nil, nil},
		{ColIn1, etensor.INT64, nil, nil},
	}
}

// NewTable returns an empty outcome table
func NewTable(name string) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", name)
	dt.SetMetaData("desc", "scored decision outcomes, one row per trial")
	dt.SetMetaData("precision", "6")
	dt.SetFromSchema(Schema(), 0)
	return dt
}

// AppendRow adds an outcome as a new row of the table
func AppendRow(dt *etable.Table, oc Outcome) {
	row := dt.Rows
	dt.SetNumRows(row + 1)
	SetRow(dt, row, oc)
}

// SetRow writes an outcome into an existing row
func SetRow(dt *etable.Table, row int, oc Outcome) {
	dt.SetCellFloat(ColTrial, row, float64(oc.Trial))
	dt.SetCellString(ColResponse, row, oc.Response.Code())
	dt.SetCellFloat(ColRT, row, float64(oc.RT))
	dt.SetCellFloat(ColDecision, row, float64(oc.Decision))
	dt.SetCellFloat(ColIn0, row, float64(oc.Pattern[0]))
	dt.SetCellFloat(ColIn1, row, float64(oc.Pattern[1]))
}

// FromTable returns all outcomes in a table
func FromTable(dt *etable.Table) ([]Outcome, error) {
	for _, cn := range []string{ColResponse, ColRT} {
		if dt.ColByName(cn) == nil {
			return nil, fmt.Errorf("results: table %s has no %s column", dt.MetaData["name"], cn)
		}
	}
	opt := func(cn string, row int, def float64) float64 {
		if dt.ColByName(cn) == nil {
			return def
		}
		return dt.CellFloat(cn, row)
	}
	ocs := make([]Outcome, dt.Rows)
	for row := range ocs {
		oc := &ocs[row]
		oc.Trial = int(opt(ColTrial, row, float64(row)))
		oc.Response = ResponseFromCode(dt.CellString(ColResponse, row))
		oc.RT = float32(dt.CellFloat(ColRT, row))
		oc.Decision = int(opt(ColDecision, row, -1))
		oc.Pattern[0] = int(opt(ColIn0, row, 0))
		oc.Pattern[1] = int(opt(ColIn1, row, 0))
	}
	return ocs, nil
}

// WriteCSV writes outcomes as tab-separated values with a header row
func WriteCSV(w io.Writer, ocs []Outcome) error {
	dt := NewTable("Outcomes")
	dt.SetNumRows(len(ocs))
	for row, oc := range ocs {
		SetRow(dt, row, oc)
	}
	return dt.WriteCSV(w, etable.Tab, etable.Headers)
}

// SaveCSV writes outcomes to the named file
func SaveCSV(filename string, ocs []Outcome) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, ocs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV reads outcomes written by WriteCSV.  The columns are configured
// from the header row.
func ReadCSV(r io.Reader) ([]Outcome, error) {
	dt := &etable.Table{}
	if err := dt.ReadCSV(r, etable.Tab); err != nil {
		return nil, err
	}
	dt.SetMetaData("name", "Outcomes")
	return FromTable(dt)
}

// OpenCSV reads outcomes from the named file
func OpenCSV(filename string) ([]Outcome, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ocs, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("results %s: %w", filename, err)
	}
	return ocs, nil
}
