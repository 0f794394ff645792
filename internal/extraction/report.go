package extraction

// DiagnosticGroup collects diagnostics sharing a reason.
type DiagnosticGroup struct {
	Reason string
	Items  []Diagnostic
}

// GroupDiagnostics buckets diagnostics by reason in order of first appearance.
func GroupDiagnostics(diags []Diagnostic) []DiagnosticGroup {
	index := make(map[string]int)
	var groups []DiagnosticGroup
	for _, d := range diags {
		i, ok := index[d.Reason]
		if !ok {
			i = len(groups)
			index[d.Reason] = i
			groups = append(groups, DiagnosticGroup{Reason: d.Reason})
		}
		groups[i].Items = append(groups[i].Items, d)
	}
	return groups
}

// BrokenEmailCount returns how many diagnostics carry the broken-email hint.
func BrokenEmailCount(diags []Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Hint == HintBrokenEmail {
			n++
		}
	}
	return n
}
