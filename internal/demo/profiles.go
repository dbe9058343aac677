package demo

// Profile calibrates synthetic PM2.5 for one location so that the resulting
// index falls roughly inside [TargetAQIMin, TargetAQIMax].
type Profile struct {
	PM25Min      float64
	PM25Max      float64
	TargetAQIMin int
	TargetAQIMax int
}

// DefaultProfile is used for locations without their own profile: a
// moderately polluted tier-2 city.
var DefaultProfile = Profile{55, 82, 90, 180}

var profiles = map[string]Profile{
	// NCR
	"Delhi":         {100, 220, 250, 450},
	"Ghaziabad":     {110, 240, 280, 480},
	"Noida":         {95, 210, 240, 430},
	"Gurugram":      {95, 200, 240, 420},
	"Faridabad":     {100, 220, 250, 450},
	"Greater Noida": {105, 230, 260, 460},

	// Industrial north
	"Patna":       {75, 140, 150, 320},
	"Lucknow":     {70, 130, 140, 300},
	"Kanpur":      {72, 135, 145, 310},
	"Muzaffarpur": {78, 145, 160, 330},
	"Varanasi":    {68, 125, 135, 290},
	"Agra":        {65, 120, 130, 280},
	"Meerut":      {72, 130, 145, 300},
	"Dhanbad":     {70, 128, 140, 295},
	"Jamshedpur":  {65, 120, 130, 280},
	"Bhilai":      {62, 115, 125, 270},
	"Raipur":      {58, 110, 115, 260},
	"Ludhiana":    {75, 145, 150, 330},
	"Amritsar":    {70, 138, 140, 315},
	"Jalandhar":   {65, 130, 130, 300},
	"Patiala":     {70, 135, 140, 310},
	"Chandigarh":  {60, 120, 120, 280},
	"Bathinda":    {75, 142, 150, 325},
	"Prayagraj":   {70, 130, 140, 300},
	"Gorakhpur":   {72, 135, 145, 310},
	"Bareilly":    {70, 130, 140, 300},
	"Aligarh":     {75, 138, 150, 315},
	"Moradabad":   {70, 130, 140, 300},

	// Metros
	"Mumbai":      {61, 88, 101, 195},
	"Kolkata":     {63, 90, 105, 200},
	"Ahmedabad":   {65, 90, 108, 200},
	"Hyderabad":   {58, 85, 95, 188},
	"Surat":       {60, 88, 100, 195},
	"Jaipur":      {63, 90, 105, 200},
	"Nagpur":      {60, 87, 100, 192},
	"Indore":      {58, 85, 95, 188},
	"Bhopal":      {60, 88, 100, 195},
	"Thane":       {58, 86, 95, 190},
	"Nashik":      {55, 82, 90, 180},
	"Rajkot":      {58, 85, 95, 188},
	"Vadodara":    {60, 88, 100, 195},
	"Jodhpur":     {62, 89, 103, 198},
	"Udaipur":     {55, 80, 90, 175},
	"Jamnagar":    {56, 82, 92, 180},
	"Bhubaneswar": {55, 82, 90, 180},
	"Cuttack":     {56, 83, 92, 182},
	"Siliguri":    {58, 85, 95, 188},
	"Durgapur":    {63, 90, 105, 200},
	"Asansol":     {65, 92, 108, 205},
	"Guwahati":    {55, 80, 90, 175},
	"Agartala":    {52, 78, 85, 170},

	// South and coast
	"Chennai":            {28, 65, 50, 115},
	"Bengaluru":          {30, 68, 52, 118},
	"Pune":               {28, 65, 50, 115},
	"Kochi":              {18, 52, 35, 88},
	"Thiruvananthapuram": {15, 48, 30, 82},
	"Coimbatore":         {22, 58, 42, 98},
	"Mangaluru":          {15, 48, 30, 82},
	"Visakhapatnam":      {22, 60, 42, 100},
	"Mysuru":             {18, 54, 35, 92},
	"Madurai":            {25, 62, 45, 105},
	"Kozhikode":          {14, 46, 28, 78},
	"Panaji":             {12, 42, 24, 72},
	"Margao":             {12, 42, 24, 72},

	// Hills and remote
	"Shimla":      {8, 28, 15, 52},
	"Manali":      {6, 25, 12, 48},
	"Dharamshala": {8, 27, 15, 50},
	"Gangtok":     {6, 24, 12, 45},
	"Shillong":    {10, 30, 18, 55},
	"Aizawl":      {8, 26, 15, 48},
	"Kohima":      {8, 27, 15, 50},
	"Imphal":      {10, 28, 18, 52},
	"Itanagar":    {8, 27, 15, 50},
	"Port Blair":  {5, 22, 10, 42},
	"Leh":         {4, 18, 8, 35},
	"Rishikesh":   {12, 38, 22, 65},
	"Haridwar":    {15, 42, 28, 72},
	"Dehradun":    {18, 48, 32, 82},
	"Ooty":        {5, 22, 10, 42},
	"Munnar":      {4, 18, 8, 35},
}

// ProfileFor returns the profile for a location name, or DefaultProfile.
func ProfileFor(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	return DefaultProfile
}

// historyRange is the band the synthetic hourly index wanders in.
type historyRange struct {
	min, max int
}

var defaultHistoryRange = historyRange{60, 150}

var historyRanges = map[string]historyRange{
	"Delhi": {200, 350}, "Ghaziabad": {220, 380}, "Noida": {190, 340},
	"Gurugram": {180, 320}, "Faridabad": {200, 350},

	"Patna": {150, 280}, "Lucknow": {140, 260}, "Kanpur": {145, 270},
	"Varanasi": {130, 250}, "Agra": {120, 240},

	"Mumbai": {80, 160}, "Kolkata": {90, 170}, "Ahmedabad": {100, 180},
	"Hyderabad": {70, 150}, "Jaipur": {90, 175},

	"Chennai": {50, 100}, "Bengaluru": {55, 110}, "Pune": {50, 105},
	"Kochi": {30, 70}, "Thiruvananthapuram": {25, 65},

	"Shimla": {20, 50}, "Gangtok": {15, 45}, "Shillong": {20, 55},
	"Port Blair": {15, 40}, "Leh": {10, 35},
}

func historyRangeFor(name string) historyRange {
	if r, ok := historyRanges[name]; ok {
		return r
	}
	return defaultHistoryRange
}
