// Package content holds the authored guidance text: the pattern help page,
// per-day guidance lines, mindful prompts, and the note templates. Content
// only, no rendering logic.
package content

import (
	"strings"

	"tableflip.dev/cosmic36/pkg/cycle"
)

// PatternInfo is the pattern help page as markdown.
func PatternInfo() string {
	return `# Cosmic 36 — Pattern help

Cosmic 36 is a repetition-based timing cycle designed to help you track consistency, notice feedback, and reflect clearly.

A new pattern can only be started on Day 1 or Day 18 — these are the two clean “entry points” in the 36-day rhythm.

Day 1 is the reset point: you begin from clarity, before momentum builds.

Day 18 is the mid-cycle reset: you begin again from experience, after you’ve gathered real signal.

This app shows the next valid start date so you don’t force a start on a “messy” day.

Anchor days (3, 6, 9, 12, 15, 18) are action-pressure days that strengthen the pattern through repetition.

Echo days (21, 24, 27, 30, 33, 36) are mirror-return days that show what came back from earlier anchors.

If you skip a crucial day, the cycle does not break — you simply lose some clarity and momentum in the feedback loop.

You can resume at any time, but for a clean restart you wait for the next Day 1 or Day 18.

Use Cosmic 36 as a calm journaling and tracking tool: repeat, observe, and carry forward only what proves real.
`
}

var guidance = map[int]string{
	1:  "Declare what you want, clearly and simply.",
	2:  "Make your repetition effortless and automatic.",
	3:  "Repeat the declaration and take one aligned action.",
	4:  "Stay steady. No extra pressure needed.",
	5:  "Notice resistance. Stay gentle. Continue.",
	6:  "Repeat and add one clean layer of action.",
	7:  "Hold the vision without demanding proof.",
	8:  "Choose alignment over mood.",
	9:  "Complete the triad with a third aligned action.",
	10: "Simplify. Repeat the basics.",
	11: "Let the body lead. Keep it calm.",
	12: "Repeat Day 3 exactly—no edits.",
	13: "Consistency is the spell.",
	14: "Stay honest. Stay simple.",
	15: "Repeat Day 6. Embody the layer.",
	16: "Steady beats intense.",
	17: "Return. Repeat. Release doubt.",
	18: "Repeat the full stack and feel the shift.",
	19: "Keep repeating—watch what responds.",
	20: "Stay open. Receive without chasing.",
	21: "Echo of Day 3: notice what returns.",
	22: "Observe patterns without judgment.",
	23: "Don’t rush outcomes. Repeat.",
	24: "Echo of Day 6: notice the response.",
	25: "Keep it small and real.",
	26: "Let the field speak. Write what you see.",
	27: "Echo of Day 9: what amplifies?",
	28: "Receive what’s here.",
	29: "Trust timing. Repeat.",
	30: "Echo of Day 12: stability or drift?",
	31: "Return to simplicity.",
	32: "Presence is power.",
	33: "Echo of Day 15: what’s undeniable now?",
	34: "Let it land. Rest.",
	35: "Give thanks and stay aligned.",
	36: "Repeat once more, then choose what you carry forward.",
}

// Guidance returns the day's guidance line.
func Guidance(day int) string {
	if g, ok := guidance[day]; ok {
		return g
	}
	return "Stay with the rhythm."
}

var insights = []string{
	"Repetition is how attention becomes devotion — and devotion becomes a stable inner field.",
	"A ritual is a container for the nervous system: it creates safety through predictability.",
	"Breath awareness is the oldest meditation technology — always available, always honest.",
	"Gratitude shifts perception first, and behavior follows perception.",
	"The body learns through consistency, not intensity.",
	"Noticing is already transformation. Awareness is action.",
	"In Zen: 'chop wood, carry water' — awakening lives inside ordinary acts.",
	"Compassion is discipline: speak to yourself like someone you love.",
	"Surrender is not giving up — it’s releasing control of timing.",
	"Tension and ease are information. The body is a quiet oracle.",
}

// Insight picks a deterministic daily line so the same day always shows the
// same text.
func Insight(day, daysLived int) string {
	idx := (day + daysLived) % len(insights)
	if idx < 0 {
		idx += len(insights)
	}
	return insights[idx]
}

// Hint is the role-specific supportive line.
func Hint(role cycle.Role) string {
	switch role {
	case cycle.RoleAnchor:
		return "Pressure day: keep it clean and exact."
	case cycle.RoleEcho:
		return "Mirror day: repeat and observe what returns."
	default:
		return "Light day: do the small repetition and breathe."
	}
}

// MindfulPrompt is the heading shown over the note field.
func MindfulPrompt(day int) string {
	switch {
	case day == 1:
		return "Declaration — write it in one clear sentence."
	case day == 2:
		return "Make it easy — what will you repeat daily without force?"
	case cycle.DayType(day) == cycle.RoleAnchor:
		return "Anchor day — what action did you take and how did it feel in your body?"
	case cycle.DayType(day) == cycle.RoleEcho:
		return "Echo day — what returned, and what might it be teaching you?"
	default:
		return "Light day — what did you do, notice, and carry forward?"
	}
}

// MindfulTemplate is the fill-in skeleton a user can insert into an empty
// note.
func MindfulTemplate(day int) string {
	switch {
	case day == 1:
		return "Declaration (one sentence):\n\nToday I repeat by:\n\nOne small aligned action:\n"
	case day == 2:
		return "Effortless repetition:\n\nWhat makes this easy today:\n\nMinimum version I will do no matter what:\n"
	case cycle.DayType(day) == cycle.RoleAnchor:
		return "Action taken today:\n\nBody signal (tension/ease/energy):\n\nOne thing I’ll keep repeating:\n"
	case cycle.DayType(day) == cycle.RoleEcho:
		return "What returned today:\n\nWhat it might be showing me:\n\nMy response (one clean choice):\n"
	default:
		return "What I did (one line):\n\nWhat I noticed (one line):\n\nWhat I carry forward (one line):\n"
	}
}

// Placeholder is the first three lines of the template, used as the empty
// note hint.
func Placeholder(day int) string {
	lines := strings.Split(MindfulTemplate(day), "\n")
	if len(lines) > 3 {
		lines = lines[:3]
	}
	return strings.Join(lines, "\n")
}
