package probe

import (
	"fmt"
	"io"
)

// Render writes the report as grouped text: one [PASS]/[FAIL] line per
// result, grouped by category in first-seen order, followed by a summary
// line and an overall status line.
func (r *Report) Render(w io.Writer) {
	var categories []string
	grouped := make(map[string][]Result)
	for _, res := range r.Results {
		if _, seen := grouped[res.Category]; !seen {
			categories = append(categories, res.Category)
		}
		grouped[res.Category] = append(grouped[res.Category], res)
	}

	for i, category := range categories {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if category != "" {
			fmt.Fprintf(w, "%s:\n", category)
		}
		for _, res := range grouped[category] {
			status := "PASS"
			if !res.Passed {
				status = "FAIL"
			}
			if res.Detail != "" {
				fmt.Fprintf(w, "  [%s] %s - %s\n", status, res.Name, res.Detail)
			} else {
				fmt.Fprintf(w, "  [%s] %s\n", status, res.Name)
			}
		}
	}

	fmt.Fprintf(w, "\nResults: %d/%d passed\n", r.PassedCount(), r.TotalCount())
	if r.OverallSuccess() {
		fmt.Fprintln(w, "All checks passed.")
	} else {
		fmt.Fprintln(w, "Some checks failed - see details above.")
	}
}
