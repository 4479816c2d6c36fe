// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"fmt"
	"strings"

	"github.com/emer/etable/agg"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/minmax"
	"github.com/emer/etable/split"
)

// RangePad is added on both sides of the reaction time range, in msec
const RangePad = 5.5

// RTStats are reaction time statistics over one response group
type RTStats struct {
	N    int     `desc:"number of outcomes in the group"`
	Mean float64 `desc:"mean reaction time"`
	Std  float64 `desc:"standard deviation of reaction time"`
	Min  float64 `desc:"minimum reaction time"`
	Max  float64 `desc:"maximum reaction time"`
}

// Summary reports the response percentages and reaction times of a run
type Summary struct {
	N     int                 `desc:"total number of outcomes"`
	Pct   [ResponsesN]float64 `desc:"percent of outcomes per response"`
	RT    [ResponsesN]RTStats `desc:"reaction time statistics per response"`
	Range minmax.F64          `desc:"reaction time range over correct and incorrect outcomes, padded by RangePad"`
}

// Summarize computes the summary of an outcome table
func Summarize(dt *etable.Table) *Summary {
	sm := &Summary{N: dt.Rows}
	sm.Range.SetInfinity()
	if dt.Rows == 0 {
		sm.Range.Set(0, 0)
		return sm
	}
	for rsp := Responses(0); rsp < ResponsesN; rsp++ {
		code := rsp.Code()
		ix := etable.NewIdxView(dt)
		ix.Filter(func(et *etable.Table, row int) bool {
			return et.CellString(ColResponse, row) == code
		})
		st := &sm.RT[rsp]
		st.N = ix.Len()
		sm.Pct[rsp] = 100 * float64(st.N) / float64(dt.Rows)
		if st.N == 0 {
			continue
		}
		st.Mean = agg.Mean(ix, ColRT)[0]
		st.Min = agg.Min(ix, ColRT)[0]
		st.Max = agg.Max(ix, ColRT)[0]
		if st.N > 1 {
			st.Std = agg.Std(ix, ColRT)[0]
		}
		if rsp == NoResp {
			continue
		}
		if st.Min < sm.Range.Min {
			sm.Range.Min = st.Min
		}
		if st.Max > sm.Range.Max {
			sm.Range.Max = st.Max
		}
	}
	if sm.RT[Correct].N+sm.RT[Incorrect].N == 0 {
		sm.Range.Set(0, 0)
		return sm
	}
	sm.Range.Min -= RangePad
	sm.Range.Max += RangePad
	return sm
}

// SummarizeOutcomes computes the summary of a list of outcomes
func SummarizeOutcomes(ocs []Outcome) *Summary {
	dt := NewTable("Outcomes")
	dt.SetNumRows(len(ocs))
	for row, oc := range ocs {
		SetRow(dt, row, oc)
	}
	return Summarize(dt)
}

// GroupTable returns a table with one row per response code present and
// the count, mean and standard deviation of the reaction time, in the
// split / agg manner of a run summary log.
func GroupTable(dt *etable.Table) *etable.Table {
	ix := etable.NewIdxView(dt)
	spl := split.GroupBy(ix, []string{ColResponse})
	split.Agg(spl, ColRT, agg.AggCount)
	split.Agg(spl, ColRT, agg.AggMean)
	split.Agg(spl, ColRT, agg.AggStd)
	gt := spl.AggsToTable(etable.AddAggName)
	gt.SetMetaData("name", "OutcomeGroups")
	return gt
}

func (sm *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "outcomes: %d\n", sm.N)
	for _, rsp := range []Responses{Correct, Incorrect, NoResp} {
		st := sm.RT[rsp]
		fmt.Fprintf(&b, "%-9s %6.2f%%  n: %d", rsp, sm.Pct[rsp], st.N)
		if st.N > 0 {
			fmt.Fprintf(&b, "  rt mean: %.2f std: %.2f min: %g max: %g", st.Mean, st.Std, st.Min, st.Max)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "rt range: [%g, %g]\n", sm.Range.Min, sm.Range.Max)
	return b.String()
}
