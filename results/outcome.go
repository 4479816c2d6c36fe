// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package results turns trial decisions into scored outcomes and persists
them.  An Outcome records whether the response was correct, incorrect, or
absent (no decision before the time horizon) together with the reaction
time.  Outcomes are kept in an etable.Table, saved as CSV or in an SQLite
database, and summarized as percentages and reaction time statistics.
*/
package results

import (
	"fmt"

	"github.com/emer/spikedec/spike"
	"github.com/goki/ki/kit"
)

// Responses are the scored outcomes of a trial
type Responses int

//go:generate stringer -type=Responses

var KiT_Responses = kit.Enums.AddEnum(ResponsesN, kit.NotBitFlag, nil)

func (ev Responses) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Responses) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The responses
const (
	// NoResp means no output reached threshold before the horizon
	NoResp Responses = iota

	// Correct means the decision matched the scoring rule
	Correct

	// Incorrect means the decision did not match the scoring rule
	Incorrect

	ResponsesN
)

// Code returns the file code of the response: True, False or NoResp
func (ev Responses) Code() string {
	switch ev {
	case Correct:
		return "True"
	case Incorrect:
		return "False"
	}
	return "NoResp"
}

// ResponseFromCode parses a file code.  Anything other than True or False
// is a missing response, as in files written by earlier tools.
func ResponseFromCode(code string) Responses {
	switch code {
	case "True":
		return Correct
	case "False":
		return Incorrect
	}
	return NoResp
}

// Scorings are the rules that decide whether a decision is correct
type Scorings int

//go:generate stringer -type=Scorings

var KiT_Scorings = kit.Enums.AddEnum(ScoringsN, kit.NotBitFlag, nil)

func (ev Scorings) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Scorings) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The scoring rules
const (
	// MatchInput is correct when the deciding output's input bit is 1
	MatchInput Scorings = iota

	// XOR is correct when the decision equals the parity of the pattern
	XOR

	ScoringsN
)

// Score returns the response for a decision on the given input pattern
func (sc Scorings) Score(decision int, pattern [2]int) Responses {
	if decision != 0 && decision != 1 {
		return NoResp
	}
	var ok bool
	switch sc {
	case XOR:
		ok = decision == (pattern[0]+pattern[1])%2
	default:
		ok = pattern[decision] == 1
	}
	if ok {
		return Correct
	}
	return Incorrect
}

// Outcome is the scored result of one trial
type Outcome struct {
	Trial    int       `desc:"trial number within the run"`
	Response Responses `desc:"scored response"`
	RT       float32   `desc:"reaction time in msec: decision time, or the horizon if there was no decision"`
	Decision int       `desc:"deciding output, or -1"`
	Pattern  [2]int    `desc:"input pattern bits"`
}

// NewOutcome scores a trial result
func NewOutcome(trial int, sc Scorings, rs spike.Result) Outcome {
	return Outcome{
		Trial:    trial,
		Response: sc.Score(rs.Decision, rs.Pattern),
		RT:       rs.Time,
		Decision: rs.Decision,
		Pattern:  rs.Pattern,
	}
}

func (oc Outcome) String() string {
	return fmt.Sprintf("trial %d: %s rt: %g pattern: %d%d", oc.Trial, oc.Response.Code(), oc.RT, oc.Pattern[0], oc.Pattern[1])
}
