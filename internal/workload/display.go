package workload

// displayFor renders the dashboard copy for a level. Solo groomers and teams
// with an assistant get different phrasing for the heavier tiers.
func displayFor(level Level, hasAssistant bool) Display {
	switch level {
	case LevelDayOff:
		return Display{
			Label:   "Day off",
			Message: "No appointments on the books. Enjoy the break!",
			Color:   "gray",
			Emoji:   "🌴",
		}
	case LevelLight:
		return Display{
			Label:   "Light day",
			Message: "A relaxed schedule with plenty of breathing room.",
			Color:   "green",
			Emoji:   "🙂",
		}
	case LevelModerate:
		return Display{
			Label:   "Steady day",
			Message: "A comfortable, full schedule at a sustainable pace.",
			Color:   "green",
			Emoji:   "👍",
		}
	case LevelBusy:
		msg := "A packed schedule. Keep transitions tight between stops."
		if hasAssistant {
			msg = "A packed schedule. Lean on your assistant to keep stops moving."
		}
		return Display{
			Label:   "Busy day",
			Message: msg,
			Color:   "yellow",
			Emoji:   "⚡",
		}
	case LevelHeavy:
		msg := "A very full day. Consider moving a flexible appointment."
		if hasAssistant {
			msg = "A very full day even with help. Consider moving a flexible appointment."
		}
		return Display{
			Label:          "Heavy day",
			Message:        msg,
			Color:          "orange",
			Emoji:          "🔥",
			ShowReliefLink: true,
		}
	default:
		msg := "This schedule is over capacity. Reschedule or reassign a stop."
		if hasAssistant {
			msg = "Over capacity even with an assistant. Reschedule or reassign a stop."
		}
		return Display{
			Label:          "Overloaded",
			Message:        msg,
			Color:          "red",
			Emoji:          "🚨",
			ShowReliefLink: true,
		}
	}
}
