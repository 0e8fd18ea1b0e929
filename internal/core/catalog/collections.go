package catalog

import "strings"

// FilterCollections returns the collections whose title contains text,
// ignoring case. An empty text returns all collections.
func FilterCollections(collections []Collection, text string) []Collection {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return collections
	}

	out := make([]Collection, 0, len(collections))
	for _, c := range collections {
		if strings.Contains(strings.ToLower(c.Title), text) {
			out = append(out, c)
		}
	}
	return out
}
