package core

import (
	"sort"
	"strings"
)

// SearchableItem is one flattened, immutable record of the navigation
// search index. keywords is the lower-cased concatenation of name,
// description and category, matched by literal substring.
type SearchableItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Target      string `json:"target"`
	Category    string `json:"category"`
	keywords    string
}

// DefaultSearchLimit caps Search results when the caller passes limit <= 0.
const DefaultSearchLimit = 5

// BuildSearchIndex flattens the navigation tree and the command dictionary
// into searchable records. Run once per session; the result is immutable.
func BuildSearchIndex(modules []NavModule, commands []CommandEntry) []SearchableItem {
	var items []SearchableItem

	add := func(name, description, target, category string) {
		items = append(items, SearchableItem{
			Name:        name,
			Description: description,
			Target:      target,
			Category:    category,
			keywords:    strings.ToLower(name + " " + description + " " + category),
		})
	}

	for _, mod := range modules {
		for _, l := range mod.Links {
			add(l.Name, l.Description, l.Target, mod.Name)
		}
		for _, g := range mod.Groups {
			for _, l := range g.Links {
				add(l.Name, l.Description, l.Target, mod.Name+" / "+g.Name)
			}
		}
	}
	for _, c := range commands {
		add(c.Trigger, c.Description, c.Target, "Comandos")
	}
	return items
}

// Search returns up to limit items matching text. Every whitespace term of
// the lower-cased input must appear as a substring of the item's keyword
// blob — conjunctive and literal. This index is for navigation search, not
// entity resolution, so it intentionally skips the phonetic Normalize.
// Items whose display name contains the full query rank before items that
// matched only through description or category.
func Search(index []SearchableItem, text string, limit int) []SearchableItem {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return nil
	}
	terms := strings.Fields(q)

	var matches []SearchableItem
	for _, item := range index {
		ok := true
		for _, t := range terms {
			if !strings.Contains(item.keywords, t) {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, item)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return strings.Contains(strings.ToLower(matches[i].Name), q) &&
			!strings.Contains(strings.ToLower(matches[j].Name), q)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
