// Package content holds the static care content shown by the client:
// recommendation guides, the common symptom list and measurement kinds.
package content

type Tip struct {
	Title string
	Text  string
}

type Section struct {
	Heading string
	Tips    []Tip
}

// Guide is one page of care recommendations.
type Guide struct {
	ID       string
	Title    string
	Summary  string
	Intro    string
	Sections []Section
}

const Intro = "These suggestions support everyday care for a person who needs extra help at home. " +
	"You can use them together with a caregiver or on your own."

const EmergencyAdvice = "Call your healthcare provider or emergency number if you notice sudden strong pain, " +
	"difficulty breathing, high fever, repeated falls, or if the person is unusually confused or sleepy."

var guides = []Guide{
	{
		ID:      "mobility",
		Title:   "Mobility & walking support",
		Summary: "Practical tips for safe movement at home.",
		Intro:   "These tips can help a person move more safely at home. Always follow your doctor’s advice first.",
		Sections: []Section{
			{Heading: "Before you move", Tips: []Tip{
				{"Plan the route", "Decide where you are going and remove objects on the floor (cables, toys, rugs that slip)."},
				{"Check your support", "Make sure the cane, walker or furniture you use for support is stable and within reach."},
				{"Shoes & clothes", "Wear closed shoes with a non-slip sole. Avoid very loose clothes that can catch on furniture."},
			}},
			{Heading: "While walking", Tips: []Tip{
				{"Small, slow steps", "Encourage calm, short steps instead of rushing. Stop and rest if the person feels tired or dizzy."},
				{"Use both hands when needed", "When standing up or sitting down, use both hands to push from the chair or bed if possible."},
				{"Avoid multitasking", "Do not talk on the phone, carry heavy objects or turn quickly while walking."},
			}},
			{Heading: "Home adjustments", Tips: []Tip{
				{"Safe bedroom", "Keep a lamp close to the bed, and make sure the path to the toilet at night is free of objects."},
				{"Bathroom safety", "Use non-slip mats, grab bars if needed, and a stable chair for showering for people with low balance."},
				{"Ask for help", "If you notice repeated near-falls, pain or big changes in balance, contact a nurse or doctor."},
			}},
		},
	},
	{
		ID:      "routine",
		Title:   "Daily care routine",
		Summary: "Example of a simple day structure.",
		Intro:   "This is an example day that can be adapted together with a caregiver. Always follow medical advice first.",
		Sections: []Section{
			{Heading: "Morning", Tips: []Tip{
				{Text: "Check how the person feels: pain, dizziness, mood."},
				{Text: "Offer water and morning medication, if prescribed."},
				{Text: "Support washing, brushing teeth and getting dressed."},
				{Text: "If possible, do a short movement exercise (for example standing up and sitting down a few times)."},
			}},
			{Heading: "During the day", Tips: []Tip{
				{Text: "Plan regular small meals or snacks instead of one big meal."},
				{Text: "Encourage drinking water or other recommended drinks every 1–2 hours."},
				{Text: "Support safe movement inside the home or a short walk outside if safe."},
				{Text: "Use the symptom diary to record important changes (pain, temperature, breathing)."},
			}},
			{Heading: "Evening", Tips: []Tip{
				{Text: "Prepare the bedroom: good light to the toilet, clear the floor of objects."},
				{Text: "Give evening medication and a light snack if recommended."},
				{Text: "Talk shortly about the day: what went well, what was difficult."},
				{Text: "Write one or two sentences in the diary for the caregiver or nurse."},
			}},
			{Heading: "When to contact healthcare", Tips: []Tip{
				{Text: EmergencyAdvice},
			}},
		},
	},
}

// Guides returns all recommendation guides in display order.
func Guides() []Guide {
	return append([]Guide(nil), guides...)
}

// FindGuide looks a guide up by id.
func FindGuide(id string) (Guide, bool) {
	for _, g := range guides {
		if g.ID == id {
			return g, true
		}
	}
	return Guide{}, false
}
