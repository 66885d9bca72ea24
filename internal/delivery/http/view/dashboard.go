package view

import (
	"fmt"
	"strconv"
	"strings"

	"ayunova/internal/domain/dashboard"
	"ayunova/internal/usecase"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

const (
	htmxSrc   = "https://unpkg.com/htmx.org@2.0.4"
	htmxWSSrc = "https://unpkg.com/htmx-ext-ws@2.0.2"

	// StreamFormatHTML is the stream's format query value for fragments.
	StreamFormatHTML = "html"
)

// DashboardPage is the full HTML document for the dashboard. The container
// connects to streamURL with the htmx ws extension, which swaps each
// #dashboard fragment it receives into place.
func DashboardPage(title string, v dashboard.View, streamURL string) g.Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text(title)),
				Script(Src(htmxSrc)),
				Script(Src(htmxWSSrc)),
			),
			Body(
				Class("min-h-screen bg-gradient-to-br from-orange-50 to-yellow-50"),
				Div(ID("toasts"), Class("fixed top-4 right-4 space-y-2")),
				Div(
					Class("container mx-auto px-4 py-8"),
					hx.Ext("ws"),
					g.Attr("ws-connect", StreamHTMLURL(streamURL)),
					DashboardContent(v),
				),
			),
		),
	)
}

// StreamHTMLURL asks the stream at streamURL for HTML fragments.
func StreamHTMLURL(streamURL string) string {
	sep := "?"
	if strings.Contains(streamURL, "?") {
		sep = "&"
	}
	return streamURL + sep + "format=" + StreamFormatHTML
}

// DashboardContent renders the dashboard body, or the loading placeholder
// while the profile is unresolved.
func DashboardContent(v dashboard.View) g.Node {
	if v.Loading {
		return Div(
			ID("dashboard"),
			Class("flex items-center justify-center min-h-[50vh]"),
			P(Class("text-lg text-gray-600"), g.Text(v.Placeholder)),
		)
	}

	return Div(
		ID("dashboard"),
		headerSection(v.Header),
		welcomeSection(),
		Div(
			Class("grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-6 mb-8"),
			g.Map(v.Cards, card),
		),
		g.If(v.Stats != nil, statsSection(v.Stats)),
		g.If(v.ShowRecentActivity(), activitySection(v.RecentActivity)),
	)
}

func headerSection(h *dashboard.Header) g.Node {
	if h == nil {
		return nil
	}
	return Header(
		Class("bg-white border-b shadow-sm mb-8"),
		Div(
			Class("flex items-center justify-between px-4 py-4"),
			Div(
				H1(Class("text-xl font-bold"), g.Text("Ayunova")),
				P(Class("text-sm text-gray-600"), g.Text("Your Wellness Dashboard")),
			),
			Div(
				Class("flex items-center space-x-4"),
				Div(
					Class("text-right"),
					P(Class("text-sm font-medium"), g.Text(h.DisplayName)),
					P(Class("text-xs text-gray-600"), g.Text(h.ConstitutionLabel)),
				),
				Button(
					Class("px-3 py-2 border rounded-md"),
					hx.Post("/signout"),
					hx.Target("#toasts"),
					hx.Swap("beforeend"),
					g.Text("Sign Out"),
				),
			),
		),
	)
}

func welcomeSection() g.Node {
	return Div(
		Class("mb-8"),
		H2(Class("text-3xl font-bold mb-2"), g.Text("Welcome to Your Wellness Journey")),
		P(Class("text-gray-600 text-lg"), g.Text("Heal naturally with AI-powered Ayurveda. Start by discovering your dosha.")),
	)
}

func card(c dashboard.Card) g.Node {
	return Div(
		Class("rounded-lg border shadow-sm p-6"),
		Data("card", c.Key),
		Div(
			Class("flex items-center justify-between"),
			Div(
				Class("p-2 rounded-lg "+c.BgColor),
				Span(Class("h-6 w-6 "+c.Color), Data("icon", c.Icon)),
			),
			g.If(c.Completed, Span(Class("text-xs text-green-600 font-medium"), g.Text("✓ Completed"))),
		),
		H3(Class("text-lg font-semibold mt-4"), g.Text(c.Title)),
		P(Class("text-sm text-gray-600"), g.Text(c.Description)),
		Button(Class("w-full mt-4 border rounded-md py-2"), g.Text(c.Action)),
	)
}

func statsSection(s *dashboard.QuickStats) g.Node {
	if s == nil {
		return nil
	}
	return Div(
		Class("grid grid-cols-1 md:grid-cols-3 gap-6 mb-8"),
		stat("Assessments Completed", s.Assessments),
		stat("Wellness Plans", s.Plans),
		stat("Days Tracked", s.DaysTracked),
	)
}

func stat(label string, n int) g.Node {
	return Div(
		Class("rounded-lg border p-6 text-center"),
		Div(Class("text-2xl font-bold text-orange-600"), g.Text(strconv.Itoa(n))),
		P(Class("text-gray-600"), g.Text(label)),
	)
}

func activitySection(entries []dashboard.ActivityEntry) g.Node {
	return Div(
		Class("mt-8"),
		H3(Class("text-xl font-semibold mb-4"), g.Text("Recent Activity")),
		Div(Class("rounded-lg border p-6 space-y-3"), g.Map(entries, activity)),
	)
}

func activity(e dashboard.ActivityEntry) g.Node {
	date := "Unknown date"
	if e.LogDate != nil {
		date = e.LogDate.Format("1/2/2006")
	}
	return Div(
		Class("flex items-center justify-between py-2 border-b last:border-b-0"),
		Div(
			P(Class("font-medium"), g.Text(date)),
			P(Class("text-sm text-gray-600"),
				g.Text(fmt.Sprintf("Sleep: %gh, Energy: %d/10", e.SleepHours, e.EnergyLevel)),
			),
		),
		Div(
			Class("text-right"),
			P(Class("text-sm font-medium"), g.Textf("Mood: %d/10", e.Mood)),
			P(Class("text-sm text-gray-600"), g.Textf("Exercise: %dmin", e.ExerciseMinutes)),
		),
	)
}

// Toast renders a notification for the #toasts container.
func Toast(n usecase.Notification) g.Node {
	style := "bg-white border"
	if n.Variant == usecase.VariantDestructive {
		style = "bg-red-600 text-white"
	}
	return Div(
		Class("rounded-md shadow p-4 "+style),
		Role("status"),
		Data("variant", n.Variant),
		P(Class("font-semibold"), g.Text(n.Title)),
		P(Class("text-sm"), g.Text(n.Description)),
	)
}
