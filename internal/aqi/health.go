package aqi

import "math"

// CigaretteEquivalentPM25 is the daily mean PM2.5 (µg/m³) whose exposure
// matches smoking one cigarette per day.
const CigaretteEquivalentPM25 = 22.0

// Recommendation is the general advice for a category.
type Recommendation struct {
	General         string `json:"general"`
	Sensitive       string `json:"sensitive"`
	OutdoorActivity string `json:"outdoor_activity"`
	MaskRequired    bool   `json:"mask_required"`
}

var recommendations = map[string]Recommendation{
	"Good": {
		General:         "Air quality is satisfactory. Enjoy outdoor activities!",
		Sensitive:       "No precautions needed.",
		OutdoorActivity: "All outdoor activities are safe.",
	},
	"Satisfactory": {
		General:         "Air quality is acceptable. Some pollutants may affect very sensitive individuals.",
		Sensitive:       "Unusually sensitive people may experience minor symptoms.",
		OutdoorActivity: "Outdoor activities are generally safe.",
	},
	"Moderate": {
		General:         "Air quality is unhealthy for sensitive groups.",
		Sensitive:       "People with respiratory or heart conditions should limit outdoor exertion.",
		OutdoorActivity: "Reduce prolonged outdoor exertion.",
		MaskRequired:    true,
	},
	"Poor": {
		General:         "Everyone may experience health effects; sensitive groups more seriously affected.",
		Sensitive:       "People with respiratory or heart disease should avoid outdoor activities.",
		OutdoorActivity: "Avoid prolonged outdoor activities. Wear N95 mask if going outside.",
		MaskRequired:    true,
	},
	"Very Poor": {
		General:         "Health alert: everyone may experience more serious health effects.",
		Sensitive:       "People with respiratory or heart conditions should stay indoors.",
		OutdoorActivity: "Avoid all outdoor activities. Keep windows closed.",
		MaskRequired:    true,
	},
	"Severe": {
		General:         "Health warning of emergency conditions. Everyone is likely to be affected.",
		Sensitive:       "All people should stay indoors and keep activity levels low.",
		OutdoorActivity: "Stay indoors. Use air purifiers. Seek medical help if experiencing symptoms.",
		MaskRequired:    true,
	},
}

// RecommendationFor returns advice for a category name, defaulting to Good.
func RecommendationFor(category string) Recommendation {
	if r, ok := recommendations[category]; ok {
		return r
	}
	return recommendations["Good"]
}

// Risk describes how a condition is affected within one category.
type Risk struct {
	Level    string   `json:"risk"`
	Symptoms string   `json:"symptoms"`
	Dos      []string `json:"dos"`
	Donts    []string `json:"donts"`
}

// Diseases lists the conditions covered by HealthRisks, in display order.
var Diseases = []string{"Headaches", "Asthma", "Heart Issues", "Eye Irritation", "Pregnancy & Infants"}

var diseaseRisks = map[string]map[string]Risk{
	"Headaches": {
		"Good":         {"Low", "None expected.", []string{"Enjoy outdoor activities."}, []string{"No restrictions."}},
		"Satisfactory": {"Low", "None expected.", []string{"Enjoy outdoor activities."}, []string{"No restrictions."}},
		"Moderate":     {"Mild", "Pressure or tightness around the forehead and temples, Fatigue.", []string{"Hydrate and take breaks.", "Favor indoor air if migraine-prone."}, []string{"Avoid intense outdoor exercise.", "Ignore worsening effects."}},
		"Poor":         {"Moderate", "Frequent headaches, Sinus pressure.", []string{"Stay hydrated.", "Use air purifiers."}, []string{"Prolonged outdoor exposure."}},
		"Very Poor":    {"High", "Severe headaches, Nausea, Dizziness.", []string{"Stay indoors.", "Keep windows closed."}, []string{"Outdoor exercise."}},
		"Severe":       {"Very High", "Intense migraines, Confusion.", []string{"Strictly stay indoors.", "Seek medical help if needed."}, []string{"Going outside without N95 mask."}},
	},
	"Asthma": {
		"Good":         {"Low", "None.", []string{"Keep inhaler nearby just in case."}, []string{"None."}},
		"Satisfactory": {"Low", "Minor wheezing possible for very sensitive.", []string{"Keep inhaler accessible."}, []string{"None."}},
		"Moderate":     {"Moderate", "Coughing, Shortness of breath.", []string{"Keep inhaler ready.", "Limit outdoor exertion."}, []string{"Heavy outdoor exercise."}},
		"Poor":         {"High", "Chest tightness, Wheezing.", []string{"Stay indoors.", "Use air purifier."}, []string{"Outdoor activities."}},
		"Very Poor":    {"Very High", "Frequent attacks, Difficulty breathing.", []string{"Stay strictly indoors.", "Wear N95 if travel is necessary."}, []string{"Open windows."}},
		"Severe":       {"Critical", "Severe attacks, Respiratory distress.", []string{"Stay indoors.", "Consult doctor if symptoms worsen."}, []string{"Any outdoor exposure."}},
	},
	"Heart Issues": {
		"Good":         {"Low", "None.", []string{"Regular exercise."}, []string{"None."}},
		"Satisfactory": {"Low", "None.", []string{"Regular exercise."}, []string{"None."}},
		"Moderate":     {"Moderate", "Palpitations in sensitive groups.", []string{"Monitor blood pressure.", "Take medication on time."}, []string{"Strenuous outdoor work."}},
		"Poor":         {"High", "Chest discomfort, Fatigue.", []string{"Avoid exertion.", "Stay indoors."}, []string{"Heavy lifting.", "Outdoor running."}},
		"Very Poor":    {"Very High", "Irregular heartbeat, Breathlessness.", []string{"Rest indoors.", "Keep emergency contacts ready."}, []string{"Stressful activities."}},
		"Severe":       {"Critical", "Chest pain, severe distress.", []string{"Complete rest.", "Medical attention if needed."}, []string{"Any physical exertion."}},
	},
	"Eye Irritation": {
		"Good":         {"Low", "None.", []string{"None."}, []string{"None."}},
		"Satisfactory": {"Low", "None.", []string{"None."}, []string{"None."}},
		"Moderate":     {"Mild", "Slight itching or redness.", []string{"Wash eyes with water.", "Wear sunglasses."}, []string{"Rubbing eyes."}},
		"Poor":         {"Moderate", "Watery eyes, Burning sensation.", []string{"Use lubricating eye drops.", "Wear protective glasses."}, []string{"Contact lenses if irritated."}},
		"Very Poor":    {"High", "Redness, Swelling, Blurred vision.", []string{"Cold compress.", "Stay indoors."}, []string{"Exposure to dust/smoke."}},
		"Severe":       {"Very High", "Severe burning, discharge.", []string{"Consult eye specialist.", "Stay in filtered air."}, []string{"Touching eyes with unclean hands."}},
	},
	"Pregnancy & Infants": {
		"Good":         {"Low", "None.", []string{"Walks and fresh air."}, []string{"None."}},
		"Satisfactory": {"Low", "None.", []string{"Normal activities."}, []string{"None."}},
		"Moderate":     {"Moderate", "Mild fatigue.", []string{"Reduce long walks outside.", "Hydrate well."}, []string{"Heavy exertion."}},
		"Poor":         {"High", "Coughing, Fatigue.", []string{"Stay indoors.", "Use air purifier."}, []string{"Outdoor parks/playgrounds."}},
		"Very Poor":    {"Very High", "Breathing difficulty.", []string{"Strictly indoors.", "Consult doctor for any symptom."}, []string{"Any outdoor exposure."}},
		"Severe":       {"Critical", "High risk of complications.", []string{"Create clean room at home.", "Medical checkups."}, []string{"Going out."}},
	},
}

// HealthRisks returns the per-disease risk for a category. Unknown
// categories use the Moderate entries.
func HealthRisks(category string) map[string]Risk {
	out := make(map[string]Risk, len(diseaseRisks))
	for disease, byCategory := range diseaseRisks {
		risk, ok := byCategory[category]
		if !ok {
			risk = byCategory["Moderate"]
		}
		out[disease] = risk
	}
	return out
}

// Solution is a threshold-gated recommended action.
type Solution struct {
	Name   string `json:"name"`
	Action string `json:"action"`
	Icon   string `json:"icon"`
	Status string `json:"status"`
}

const (
	SolutionMust     = "must"
	SolutionOptional = "optional"
)

type solutionRule struct {
	threshold  int
	name, icon string
	must, opt  string
}

// Each action becomes mandatory once the index is strictly above its threshold.
var solutionRules = []solutionRule{
	{100, "Air Purifier", "air_purifier_gen", "Turn On", "Optional"},
	{150, "Car Filter", "directions_car", "Must", "Check"},
	{200, "N95 Mask", "masks", "Must", "Optional"},
	{250, "Stay Indoor", "home", "Must", "Preferred"},
}

// Solutions returns every recommended action for index, in fixed order.
func Solutions(index int) []Solution {
	out := make([]Solution, 0, len(solutionRules))
	for _, r := range solutionRules {
		s := Solution{Name: r.name, Icon: r.icon, Action: r.opt, Status: SolutionOptional}
		if index > r.threshold {
			s.Action = r.must
			s.Status = SolutionMust
		}
		out = append(out, s)
	}
	return out
}

// HealthImpact expresses PM2.5 exposure as cigarette equivalents.
type HealthImpact struct {
	CigarettesPerDay  float64    `json:"cigarettes_per_day"`
	CigarettesWeekly  float64    `json:"cigarettes_weekly"`
	CigarettesMonthly float64    `json:"cigarettes_monthly"`
	Solutions         []Solution `json:"solutions"`
}

// Impact derives cigarette equivalents from the measured PM2.5 (0 when
// absent) and the recommended actions from the report index.
func Impact(v Vector, r Report) HealthImpact {
	pm25, _ := v.Get(PM25)
	perDay := roundTo(pm25/CigaretteEquivalentPM25, 1)
	return HealthImpact{
		CigarettesPerDay:  perDay,
		CigarettesWeekly:  roundTo(perDay*7, 1),
		CigarettesMonthly: roundTo(perDay*30, 0),
		Solutions:         Solutions(r.Index),
	}
}

func roundTo(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.RoundToEven(v*scale) / scale
}
