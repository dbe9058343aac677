package aqi

import (
	"math"
	"strings"
)

// Pollutant identifies one of the measured pollutants.
type Pollutant string

const (
	PM25 Pollutant = "pm25"
	PM10 Pollutant = "pm10"
	NO2  Pollutant = "no2"
	SO2  Pollutant = "so2"
	CO   Pollutant = "co"
	O3   Pollutant = "o3"
)

// Pollutants is the canonical pollutant order. Aggregation ties and display
// rows follow it.
var Pollutants = []Pollutant{PM25, PM10, NO2, SO2, CO, O3}

// ParsePollutant maps an upstream parameter name (e.g. "PM2.5", "pm25") to a Pollutant.
func ParsePollutant(s string) (Pollutant, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, ".", "")
	switch Pollutant(key) {
	case PM25, PM10, NO2, SO2, CO, O3:
		return Pollutant(key), true
	}
	return "", false
}

// Vector holds one optional concentration per pollutant. A nil field means
// the pollutant was not measured. Units follow Display.
type Vector struct {
	PM25 *float64 `json:"pm25"`
	PM10 *float64 `json:"pm10"`
	NO2  *float64 `json:"no2"`
	SO2  *float64 `json:"so2"`
	CO   *float64 `json:"co"`
	O3   *float64 `json:"o3"`
}

func (v *Vector) field(p Pollutant) **float64 {
	switch p {
	case PM25:
		return &v.PM25
	case PM10:
		return &v.PM10
	case NO2:
		return &v.NO2
	case SO2:
		return &v.SO2
	case CO:
		return &v.CO
	case O3:
		return &v.O3
	}
	return nil
}

// Get returns the concentration for p and whether it was measured.
func (v Vector) Get(p Pollutant) (float64, bool) {
	f := v.field(p)
	if f == nil || *f == nil {
		return 0, false
	}
	return **f, true
}

// Set records a concentration. Negative, NaN and infinite values are
// malformed measurements and are dropped.
func (v *Vector) Set(p Pollutant, c float64) {
	f := v.field(p)
	if f == nil || !validConcentration(c) {
		return
	}
	val := c
	*f = &val
}

// Empty reports whether no pollutant was measured.
func (v Vector) Empty() bool {
	for _, p := range Pollutants {
		if _, ok := v.Get(p); ok {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so cached vectors are never shared by pointer.
func (v Vector) Clone() Vector {
	var out Vector
	for _, p := range Pollutants {
		if c, ok := v.Get(p); ok {
			out.Set(p, c)
		}
	}
	return out
}

func validConcentration(c float64) bool {
	return c >= 0 && !math.IsNaN(c) && !math.IsInf(c, 0)
}

// DisplayInfo describes how a pollutant is presented to users.
type DisplayInfo struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	FullName string `json:"fullName"`
}

var displayInfo = map[Pollutant]DisplayInfo{
	PM25: {Name: "PM2.5", Unit: "µg/m³", FullName: "Fine Particulate Matter"},
	PM10: {Name: "PM10", Unit: "µg/m³", FullName: "Particulate Matter"},
	NO2:  {Name: "NO₂", Unit: "µg/m³", FullName: "Nitrogen Dioxide"},
	SO2:  {Name: "SO₂", Unit: "µg/m³", FullName: "Sulfur Dioxide"},
	CO:   {Name: "CO", Unit: "mg/m³", FullName: "Carbon Monoxide"},
	O3:   {Name: "O₃", Unit: "µg/m³", FullName: "Ozone"},
}

// Display returns presentation metadata. Unknown pollutants get their id
// upper-cased and no unit.
func Display(p Pollutant) DisplayInfo {
	if d, ok := displayInfo[p]; ok {
		return d
	}
	return DisplayInfo{Name: strings.ToUpper(string(p)), FullName: string(p)}
}
