package aqi

// Merge reduces readings from several stations into one vector by keeping
// the worst (highest) valid reading per pollutant. A pollutant absent from
// every station stays unmeasured.
func Merge(stations ...Vector) Vector {
	var out Vector
	for _, s := range stations {
		for _, p := range Pollutants {
			c, ok := s.Get(p)
			if !ok || !validConcentration(c) {
				continue
			}
			if cur, seen := out.Get(p); !seen || c > cur {
				out.Set(p, c)
			}
		}
	}
	return out
}
