package aqi

// Breakpoint is one linear segment mapping a concentration range onto an
// index range.
type Breakpoint struct {
	LowConc  float64
	HighConc float64
	LowAQI   int
	HighAQI  int
}

// Breakpoints is the CPCB (India) National AQI table. Segments per pollutant
// are ascending and non-overlapping. CO is in mg/m³, the rest in µg/m³.
var Breakpoints = map[Pollutant][]Breakpoint{
	PM25: {
		{0, 30, 0, 50},
		{31, 60, 51, 100},
		{61, 90, 101, 200},
		{91, 120, 201, 300},
		{121, 250, 301, 400},
		{251, 500, 401, 500},
	},
	PM10: {
		{0, 50, 0, 50},
		{51, 100, 51, 100},
		{101, 250, 101, 200},
		{251, 350, 201, 300},
		{351, 430, 301, 400},
		{431, 600, 401, 500},
	},
	NO2: {
		{0, 40, 0, 50},
		{41, 80, 51, 100},
		{81, 180, 101, 200},
		{181, 280, 201, 300},
		{281, 400, 301, 400},
		{401, 800, 401, 500},
	},
	SO2: {
		{0, 40, 0, 50},
		{41, 80, 51, 100},
		{81, 380, 101, 200},
		{381, 800, 201, 300},
		{801, 1600, 301, 400},
		{1601, 2400, 401, 500},
	},
	CO: {
		{0, 1.0, 0, 50},
		{1.1, 2.0, 51, 100},
		{2.1, 10, 101, 200},
		{10.1, 17, 201, 300},
		{17.1, 34, 301, 400},
		{34.1, 50, 401, 500},
	},
	O3: {
		{0, 50, 0, 50},
		{51, 100, 51, 100},
		{101, 168, 101, 200},
		{169, 208, 201, 300},
		{209, 748, 301, 400},
		{749, 1000, 401, 500},
	},
}
