package crew

// Requirement is the crew size a flight duration dictates.
type Requirement struct {
	Pilots     int
	Attendants int
}

// RequiredCrew maps a flight's duration to its staffing rule: long haul
// routes (over six hours) fly with 3 pilots and 6 attendants, everything
// else with 2 and 3.
func RequiredCrew(durationHours float64) Requirement {
	if durationHours > 6 {
		return Requirement{Pilots: 3, Attendants: 6}
	}
	return Requirement{Pilots: 2, Attendants: 3}
}

// Dedupe drops repeated ids while preserving submission order.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
