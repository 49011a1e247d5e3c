package inventory

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterItems は name か category に term を含む行だけ返す（大文字小文字無視）。
// term が空なら全件。
func FilterItems(items []ItemResponse, term string) []ItemResponse {
	if term == "" {
		return items
	}
	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		if strings.Contains(fold.String(it.Name), needle) || strings.Contains(fold.String(it.Category), needle) {
			out = append(out, it)
		}
	}
	return out
}
