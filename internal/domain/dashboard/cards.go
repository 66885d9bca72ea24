package dashboard

// Inputs is the slice of wellness state the card table looks at.
type Inputs struct {
	HasAssessment bool
	PlanCount     int
	LogCount      int
}

// CardSpec is one row of the card table: static copy plus the two
// functions that derive completion and the button label.
type CardSpec struct {
	Key         string
	Title       string
	Description string
	Icon        string
	Color       string
	BgColor     string
	Completed   func(Inputs) bool
	Action      func(Inputs) string
}

// Card is a CardSpec evaluated against concrete Inputs.
type Card struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	BgColor     string `json:"bg_color"`
	Completed   bool   `json:"completed"`
	Action      string `json:"action"`
}

const (
	CardDosha        = "dosha_assessment"
	CardWellnessPlan = "wellness_plan"
	CardLifestyle    = "lifestyle_tracking"
	CardChat         = "ayurgpt_chat"
	CardConsultation = "consultations"
)

func never(Inputs) bool { return false }

func label(s string) func(Inputs) string {
	return func(Inputs) string { return s }
}

func toggle(done func(Inputs) bool, incomplete, complete string) func(Inputs) string {
	return func(in Inputs) string {
		if done(in) {
			return complete
		}
		return incomplete
	}
}

func hasAssessment(in Inputs) bool { return in.HasAssessment }
func hasPlans(in Inputs) bool      { return in.PlanCount > 0 }
func hasLogs(in Inputs) bool       { return in.LogCount > 0 }

// Cards is the fixed navigation table, in display order.
var Cards = []CardSpec{
	{
		Key:         CardDosha,
		Title:       "Dosha Assessment",
		Description: "Discover your unique Ayurvedic constitution",
		Icon:        "brain",
		Color:       "text-blue-600",
		BgColor:     "bg-blue-50",
		Completed:   hasAssessment,
		Action:      toggle(hasAssessment, "Take Assessment", "View Results"),
	},
	{
		Key:         CardWellnessPlan,
		Title:       "Wellness Plan",
		Description: "Your personalized Ayurvedic wellness journey",
		Icon:        "heart",
		Color:       "text-red-600",
		BgColor:     "bg-red-50",
		Completed:   hasPlans,
		Action:      toggle(hasPlans, "Create Plan", "View Plans"),
	},
	{
		Key:         CardLifestyle,
		Title:       "Lifestyle Tracking",
		Description: "Track your daily wellness habits",
		Icon:        "bar-chart",
		Color:       "text-green-600",
		BgColor:     "bg-green-50",
		Completed:   hasLogs,
		Action:      label("Log Today"),
	},
	{
		Key:         CardChat,
		Title:       "AyurGPT Chat",
		Description: "Get AI-powered Ayurvedic guidance",
		Icon:        "message-circle",
		Color:       "text-purple-600",
		BgColor:     "bg-purple-50",
		Completed:   never,
		Action:      label("Start Chat"),
	},
	{
		Key:         CardConsultation,
		Title:       "Consultations",
		Description: "Book sessions with Ayurvedic practitioners",
		Icon:        "calendar",
		Color:       "text-orange-600",
		BgColor:     "bg-orange-50",
		Completed:   never,
		Action:      label("Book Now"),
	},
}

// Evaluate renders a spec against the inputs.
func (s CardSpec) Evaluate(in Inputs) Card {
	return Card{
		Key:         s.Key,
		Title:       s.Title,
		Description: s.Description,
		Icon:        s.Icon,
		Color:       s.Color,
		BgColor:     s.BgColor,
		Completed:   s.Completed(in),
		Action:      s.Action(in),
	}
}

func EvaluateCards(specs []CardSpec, in Inputs) []Card {
	out := make([]Card, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.Evaluate(in))
	}
	return out
}
