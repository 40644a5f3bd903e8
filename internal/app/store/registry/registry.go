// internal/app/store/registry/registry.go

// Package registry maps logical entity types to their physical collections
// and records the per-type read policy. It is a static lookup table with no
// state.
package registry

import "sort"

// EntityType is the logical name consumers use for a collection.
type EntityType string

const (
	People        EntityType = "people"
	Publications  EntityType = "publications"
	Projects      EntityType = "projects"
	Achievements  EntityType = "achievements"
	ResearchAreas EntityType = "researchAreas"
	PhotoGallery  EntityType = "photoGallery"
	News          EntityType = "news"
	Events        EntityType = "events"
	Settings      EntityType = "settings"
)

type entry struct {
	collection string
	// curated types show an honest empty state instead of placeholder content
	curated bool
	// the backing collection has no composite index for filter+sort queries
	singleCondition bool
	// documents carry a draft/published status and only published ones are public
	drafts     bool
	listFields []string
}

var table = map[EntityType]entry{
	People: {
		collection: "people",
		curated:    true,
		listFields: []string{"research_interests"},
	},
	Publications: {
		collection: "publications",
		curated:    true,
		listFields: []string{"authors", "keywords"},
	},
	Projects: {
		collection: "projects",
		listFields: []string{"team_members"},
	},
	Achievements: {
		collection: "achievements",
	},
	ResearchAreas: {
		collection: "research_areas",
		listFields: []string{"research_objectives", "key_applications"},
	},
	PhotoGallery: {
		collection: "photo_gallery",
	},
	News: {
		collection:      "news",
		curated:         true,
		singleCondition: true,
		drafts:          true,
		listFields:      []string{"tags"},
	},
	Events: {
		collection:      "events",
		curated:         true,
		singleCondition: true,
		drafts:          true,
		listFields:      []string{"tags"},
	},
	Settings: {
		collection: "settings",
	},
}

// PhysicalName returns the store collection for t. Types without an entry
// map to themselves.
func PhysicalName(t EntityType) string {
	if e, ok := table[t]; ok {
		return e.collection
	}
	return string(t)
}

// AllowsFallback reports whether placeholder content may stand in for t
// when the store is empty or unreachable. It is false for the curated
// types (people, publications, news, events) and true for everything else.
func AllowsFallback(t EntityType) bool {
	return !table[t].curated
}

// SingleCondition reports whether queries against t may carry at most one
// filter or sort directive.
func SingleCondition(t EntityType) bool {
	return table[t].singleCondition
}

// HasDrafts reports whether documents of t have a draft/published status
// that hides drafts from public readers.
func HasDrafts(t EntityType) bool {
	return table[t].drafts
}

// ListFields returns the list-typed fields of t, which are never null.
func ListFields(t EntityType) []string {
	return table[t].listFields
}

// Lookup resolves a logical name coming from outside (a URL segment, a
// form) to a known EntityType.
func Lookup(name string) (EntityType, bool) {
	t := EntityType(name)
	_, ok := table[t]
	return t, ok
}

// All returns every known entity type in name order.
func All() []EntityType {
	out := make([]EntityType, 0, len(table))
	for t := range table {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Collections returns every physical collection name in name order.
func Collections() []string {
	seen := make(map[string]bool, len(table))
	out := make([]string, 0, len(table))
	for _, e := range table {
		if !seen[e.collection] {
			seen[e.collection] = true
			out = append(out, e.collection)
		}
	}
	sort.Strings(out)
	return out
}
