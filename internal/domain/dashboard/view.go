package dashboard

import (
	"strings"
	"time"

	"ayunova/internal/domain/profile"
	"ayunova/internal/domain/wellness"
)

const (
	LoadingPlaceholder = "Loading your wellness dashboard..."
	DefaultDisplayName = "Welcome"
	NoConstitutionText = "Complete assessment to see your dosha"

	// RecentActivityLimit caps the recent activity list.
	RecentActivityLimit = 5
)

type Header struct {
	DisplayName       string `json:"display_name"`
	ConstitutionLabel string `json:"constitution_label"`
}

type QuickStats struct {
	Assessments int `json:"assessments"`
	Plans       int `json:"plans"`
	DaysTracked int `json:"days_tracked"`
}

type ActivityEntry struct {
	LogDate         *time.Time `json:"log_date"`
	SleepHours      float64    `json:"sleep_hours"`
	EnergyLevel     int        `json:"energy_level"`
	Mood            int        `json:"mood"`
	ExerciseMinutes int        `json:"exercise_minutes"`
}

// View is the render model of the dashboard. A loading view carries only
// Loading and Placeholder.
type View struct {
	Loading        bool            `json:"loading"`
	Placeholder    string          `json:"placeholder,omitempty"`
	Header         *Header         `json:"header,omitempty"`
	Cards          []Card          `json:"cards,omitempty"`
	Stats          *QuickStats     `json:"stats,omitempty"`
	RecentActivity []ActivityEntry `json:"recent_activity,omitempty"`
}

// ShowRecentActivity reports whether the recent activity section renders.
func (v View) ShowRecentActivity() bool {
	return len(v.RecentActivity) > 0
}

// Build maps loader state and the wellness snapshot to a View.
func Build(p *profile.Profile, loading bool, snap wellness.Snapshot) View {
	if loading {
		return View{Loading: true, Placeholder: LoadingPlaceholder}
	}

	in := InputsFrom(snap)
	stats := QuickStats{
		Assessments: boolCount(in.HasAssessment),
		Plans:       in.PlanCount,
		DaysTracked: in.LogCount,
	}

	return View{
		Header:         buildHeader(p, snap.DoshaAssessment),
		Cards:          EvaluateCards(Cards, in),
		Stats:          &stats,
		RecentActivity: RecentActivity(snap.LifestyleLogs),
	}
}

func InputsFrom(snap wellness.Snapshot) Inputs {
	return Inputs{
		HasAssessment: snap.DoshaAssessment != nil,
		PlanCount:     len(snap.WellnessPlans),
		LogCount:      len(snap.LifestyleLogs),
	}
}

// RecentActivity takes the first entries in the order supplied; it does not
// re-sort by date.
func RecentActivity(logs []wellness.LifestyleLog) []ActivityEntry {
	n := len(logs)
	if n > RecentActivityLimit {
		n = RecentActivityLimit
	}
	out := make([]ActivityEntry, 0, n)
	for _, l := range logs[:n] {
		out = append(out, ActivityEntry{
			LogDate:         l.LogDate,
			SleepHours:      deref(l.SleepHours),
			EnergyLevel:     deref(l.EnergyLevel),
			Mood:            deref(l.Mood),
			ExerciseMinutes: deref(l.ExerciseMinutes),
		})
	}
	return out
}

func buildHeader(p *profile.Profile, a *wellness.DoshaAssessment) *Header {
	h := &Header{DisplayName: DefaultDisplayName, ConstitutionLabel: NoConstitutionText}
	if p != nil && p.FullName != nil && strings.TrimSpace(*p.FullName) != "" {
		h.DisplayName = strings.TrimSpace(*p.FullName)
	}
	if a != nil && a.PrimaryDosha != nil && *a.PrimaryDosha != "" {
		h.ConstitutionLabel = ConstitutionLabel(*a.PrimaryDosha)
	}
	return h
}

// ConstitutionLabel shows the assessed dosha as stored, e.g. "Vata" becomes
// "Vata Constitution" and "vata" stays lower case.
func ConstitutionLabel(dosha string) string {
	return dosha + " Constitution"
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
