package aqi

import "math"

// MaxIndex is the ceiling of the index scale.
const MaxIndex = 500

// Category is one of the six CPCB index bands.
type Category struct {
	Name        string `json:"category"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Categories partition [0,500] in ascending order.
var Categories = []Category{
	{Name: "Good", Min: 0, Max: 50, Color: "#00e400", Description: "Minimal impact on health"},
	{Name: "Satisfactory", Min: 51, Max: 100, Color: "#ffff00", Description: "Minor breathing discomfort for sensitive people"},
	{Name: "Moderate", Min: 101, Max: 200, Color: "#ff7e00", Description: "Breathing discomfort for people with asthma and heart conditions"},
	{Name: "Poor", Min: 201, Max: 300, Color: "#ff0000", Description: "Breathing discomfort on prolonged exposure"},
	{Name: "Very Poor", Min: 301, Max: 400, Color: "#99004c", Description: "Respiratory illness on prolonged exposure"},
	{Name: "Severe", Min: 401, Max: 500, Color: "#7e0023", Description: "Affects healthy people, serious impact on those with existing conditions"},
}

// Report is the aggregated index for one pollutant vector.
type Report struct {
	Index      int               `json:"aqi"`
	Category   string            `json:"category"`
	Color      string            `json:"color"`
	Desc       string            `json:"description"`
	Dominant   *Pollutant        `json:"dominant_pollutant"`
	SubIndices map[Pollutant]int `json:"sub_indices"`
}

// SubIndex converts a single concentration to its sub-index in [0,500].
// Unknown pollutants contribute 0. Concentrations past the last segment
// saturate at 500; concentrations in the gap between two published segments
// take the lower bound of the next one.
func SubIndex(p Pollutant, concentration float64) int {
	segments, ok := Breakpoints[p]
	if !ok || len(segments) == 0 || math.IsNaN(concentration) {
		return 0
	}

	for _, bp := range segments {
		if concentration > bp.HighConc {
			continue
		}
		c := math.Max(concentration, bp.LowConc)
		slope := float64(bp.HighAQI-bp.LowAQI) / (bp.HighConc - bp.LowConc)
		return int(math.RoundToEven(slope*(c-bp.LowConc) + float64(bp.LowAQI)))
	}
	return MaxIndex
}

// CategoryFor returns the band containing index. Values above 500 are
// Severe and negative values fall back to Good.
func CategoryFor(index int) Category {
	for _, c := range Categories {
		if index >= c.Min && index <= c.Max {
			return c
		}
	}
	if index > MaxIndex {
		return Categories[len(Categories)-1]
	}
	return Categories[0]
}

// Aggregate computes the overall index as the maximum sub-index over the
// measured pollutants. The dominant pollutant is the first one in canonical
// order reaching that maximum; an empty vector yields index 0 with no
// dominant pollutant.
func Aggregate(v Vector) Report {
	subs := make(map[Pollutant]int, len(Pollutants))
	index := 0
	var dominant *Pollutant

	for _, p := range Pollutants {
		c, ok := v.Get(p)
		if !ok || !validConcentration(c) {
			continue
		}
		sub := SubIndex(p, c)
		subs[p] = sub
		if dominant == nil || sub > index {
			p := p
			dominant = &p
			index = sub
		}
	}

	cat := CategoryFor(index)
	return Report{
		Index:      index,
		Category:   cat.Name,
		Color:      cat.Color,
		Desc:       cat.Description,
		Dominant:   dominant,
		SubIndices: subs,
	}
}
