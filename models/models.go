package models

import (
	"errors"
	"time"
)

// ErrRegionNotFound is returned when no metadata exists for a region code
var ErrRegionNotFound = errors.New("region not found")

// ErrReportNotFound is returned when a region has no report document
var ErrReportNotFound = errors.New("report not found")

// AllRegions is the search scope that spans every region.
const AllRegions = "all"

type Chamber string

const (
	ChamberUpper Chamber = "upper"
	ChamberLower Chamber = "lower"
	ChamberJoint Chamber = "joint"
)

// Chambers lists the two houses in display order.
var Chambers = []Chamber{ChamberUpper, ChamberLower}

// Metadata describes a region's legislature.
type Metadata struct {
	Abbr              string `json:"abbr" yaml:"abbr"`
	Name              string `json:"name" yaml:"name"`
	LegislatureName   string `json:"legislature_name" yaml:"legislature_name"`
	UpperChamberName  string `json:"upper_chamber_name" yaml:"upper_chamber_name"`
	UpperChamberTitle string `json:"upper_chamber_title" yaml:"upper_chamber_title"`
	LowerChamberName  string `json:"lower_chamber_name" yaml:"lower_chamber_name"`
	LowerChamberTitle string `json:"lower_chamber_title" yaml:"lower_chamber_title"`
}

// ChamberName returns the display name of the given chamber, e.g. "Senate".
func (m Metadata) ChamberName(c Chamber) string {
	switch c {
	case ChamberUpper:
		return m.UpperChamberName
	case ChamberLower:
		return m.LowerChamberName
	}
	return ""
}

// ChamberTitle returns the member title of the given chamber, e.g. "Senator".
func (m Metadata) ChamberTitle(c Chamber) string {
	switch c {
	case ChamberUpper:
		return m.UpperChamberTitle
	case ChamberLower:
		return m.LowerChamberTitle
	}
	return ""
}

type Session struct {
	ID          string     `json:"id" yaml:"id"`
	DisplayName string     `json:"display_name" yaml:"display_name"`
	Term        string     `json:"term" yaml:"term"`
	StartDate   *time.Time `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	BillCount   int        `json:"bill_count" yaml:"-"`
}

// Legislator is a member record. Chamber is empty for roles outside the
// two chambers, such as a lieutenant governor presiding over the senate.
type Legislator struct {
	ID       string  `json:"id" yaml:"id"`
	State    string  `json:"state" yaml:"state"`
	Chamber  Chamber `json:"chamber,omitempty" yaml:"chamber,omitempty"`
	Party    string  `json:"party" yaml:"party"`
	FullName string  `json:"full_name" yaml:"full_name"`
	District string  `json:"district,omitempty" yaml:"district,omitempty"`
	Active   bool    `json:"active" yaml:"active"`
}

type Committee struct {
	ID      string  `json:"id" yaml:"id"`
	State   string  `json:"state" yaml:"state"`
	Chamber Chamber `json:"chamber" yaml:"chamber"`
	Name    string  `json:"name" yaml:"name"`
}

// ActionDates holds the notable dates of a bill's history.
type ActionDates struct {
	First       *time.Time `json:"first,omitempty" yaml:"first,omitempty"`
	Last        *time.Time `json:"last,omitempty" yaml:"last,omitempty"`
	PassedUpper *time.Time `json:"passed_upper,omitempty" yaml:"passed_upper,omitempty"`
	PassedLower *time.Time `json:"passed_lower,omitempty" yaml:"passed_lower,omitempty"`
	Signed      *time.Time `json:"signed,omitempty" yaml:"signed,omitempty"`
}

// Passed returns the date the bill passed the given chamber, if it did.
func (d ActionDates) Passed(c Chamber) *time.Time {
	switch c {
	case ChamberUpper:
		return d.PassedUpper
	case ChamberLower:
		return d.PassedLower
	}
	return nil
}

type Bill struct {
	ID          string      `json:"id" yaml:"id"`
	State       string      `json:"state" yaml:"state"`
	Session     string      `json:"session" yaml:"session"`
	Chamber     Chamber     `json:"chamber" yaml:"chamber"`
	BillID      string      `json:"bill_id" yaml:"bill_id"`
	Title       string      `json:"title" yaml:"title"`
	LastAction  string      `json:"last_action,omitempty" yaml:"last_action,omitempty"`
	ActionDates ActionDates `json:"action_dates" yaml:"action_dates"`
}

// RegionData is everything imported for one region in a single load.
type RegionData struct {
	Metadata    Metadata     `yaml:"metadata"`
	Sessions    []Session    `yaml:"sessions"`
	Legislators []Legislator `yaml:"legislators"`
	Committees  []Committee  `yaml:"committees"`
	Bills       []Bill       `yaml:"bills"`
}
