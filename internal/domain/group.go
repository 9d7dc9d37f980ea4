package domain

// GroupViolations collapses an ordered violation sequence into one group per
// distinct rule. Groups appear in first-appearance order of their rule, and
// violations keep their relative order inside each group; the result is a
// pure function of the input sequence.
func GroupViolations(violations []Violation) []ViolationGroup {
	var groups []ViolationGroup
	index := make(map[string]int, len(violations))

	for _, v := range violations {
		i, seen := index[v.Rule]
		if !seen {
			i = len(groups)
			index[v.Rule] = i
			groups = append(groups, ViolationGroup{Rule: v.Rule})
		}
		groups[i].Violations = append(groups[i].Violations, v)
		if groups[i].RepresentativeImage == "" && v.ImageRef != "" {
			groups[i].RepresentativeImage = v.ImageRef
		}
	}

	return groups
}
