package weather

import (
	"math"
	"sort"
)

// AggregateReadings combines multiple provider readings into a single Snapshot.
// Numeric fields are averaged; the condition is the most frequent one, ties
// going to the earliest reading. Text fields come from the first reading
// that carries them.
func AggregateReadings(readings []Reading) Snapshot {
	if len(readings) == 0 {
		return Snapshot{Condition: ConditionUnknown}
	}

	// Stable provider order keeps the result independent of fetch completion order.
	sorted := make([]Reading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ProviderName < sorted[j].ProviderName
	})

	var (
		sumTemp, sumFeels, sumHumidity, sumWind float64
		sinDir, cosDir                          float64
		description, icon                       string
	)

	conditionCounts := make(map[Condition]int)
	var conditionOrder []Condition
	providers := make([]ProviderContribution, 0, len(sorted))

	for _, r := range sorted {
		sumTemp += r.TemperatureC
		sumFeels += r.FeelsLikeC
		sumHumidity += r.HumidityPct
		sumWind += r.WindSpeedKmh

		rad := r.WindDirection * math.Pi / 180
		sinDir += math.Sin(rad)
		cosDir += math.Cos(rad)

		if description == "" {
			description = r.Description
		}
		if icon == "" {
			icon = r.Icon
		}

		if _, seen := conditionCounts[r.Condition]; !seen {
			conditionOrder = append(conditionOrder, r.Condition)
		}
		conditionCounts[r.Condition]++

		providers = append(providers, ProviderContribution{
			ProviderName: r.ProviderName,
			Timestamp:    r.Timestamp,
		})
	}

	n := float64(len(sorted))

	bestCond := ConditionUnknown
	bestCount := 0
	for _, cond := range conditionOrder {
		if count := conditionCounts[cond]; count > bestCount {
			bestCount = count
			bestCond = cond
		}
	}

	// Wind direction is circular, so it is averaged as a vector.
	dir := math.Atan2(sinDir, cosDir) * 180 / math.Pi
	if dir < 0 {
		dir += 360
	}

	return Snapshot{
		Temperature:   int(math.Round(sumTemp / n)),
		FeelsLike:     int(math.Round(sumFeels / n)),
		Humidity:      int(math.Round(sumHumidity / n)),
		WindSpeed:     int(math.Round(sumWind / n)),
		WindDirection: int(math.Round(dir)) % 360,
		Description:   description,
		Icon:          icon,
		Condition:     bestCond,
		Providers:     providers,
	}
}
