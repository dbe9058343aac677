package demo

import (
	"fmt"

	"github.com/i474232898/airaware/internal/weather"
)

type sky struct {
	condition string
	icon      string
}

var daySkies = []sky{
	{"Clear Sky", "☀️"},
	{"Partly Cloudy", "⛅"},
	{"Scattered Clouds", "🌤️"},
	{"Cloudy", "☁️"},
	{"Hazy", "🌫️"},
}

var descriptions = []string{"Clear Sky", "Partly Cloudy", "Hazy", "Scattered Clouds"}

var conditions = map[string]weather.Condition{
	"Clear Sky":        weather.ConditionClear,
	"Partly Cloudy":    weather.ConditionCloudy,
	"Hazy":             weather.ConditionMist,
	"Scattered Clouds": weather.ConditionCloudy,
}

// Weather synthesizes current conditions and a six-slot hourly forecast
// ("Now" followed by the next five full hours) for location.
func (s *Synthesizer) Weather(location string) weather.Snapshot {
	bucket := s.CurrentBucket()
	r := s.rng(location, bucket, "weather")

	baseTemp := randInt(r, 18, 35)
	forecast := make([]weather.HourlyForecast, 0, 6)

	for i := 0; i < 6; i++ {
		hour := (bucket.Hour() + i) % 24

		var offset int
		switch {
		case hour >= 6 && hour <= 14:
			offset = randInt(r, -2, 4)
		case hour > 14 && hour <= 18:
			offset = randInt(r, -4, 0)
		default:
			offset = randInt(r, -8, -3)
		}

		var slot sky
		if hour >= 19 || hour < 6 {
			if r.Float64() < 0.5 {
				slot = sky{"Clear Night", "🌙"}
			} else {
				slot = sky{"Partly Cloudy", "☁️"}
			}
		} else {
			slot = daySkies[r.IntN(len(daySkies))]
		}

		label := "Now"
		if i > 0 {
			label = fmt.Sprintf("%02d:00", hour)
		}

		forecast = append(forecast, weather.HourlyForecast{
			Time:      label,
			Temp:      baseTemp + offset,
			Icon:      slot.icon,
			Condition: slot.condition,
		})
	}

	description := descriptions[r.IntN(len(descriptions))]
	return weather.Snapshot{
		Temperature:    baseTemp,
		FeelsLike:      baseTemp + randInt(r, -2, 3),
		Humidity:       randInt(r, 30, 80),
		WindSpeed:      randInt(r, 5, 25),
		WindDirection:  randInt(r, 0, 359),
		Description:    description,
		Icon:           "01d",
		Condition:      conditions[description],
		HourlyForecast: forecast,
	}
}
