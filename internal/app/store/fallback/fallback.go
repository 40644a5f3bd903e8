// internal/app/store/fallback/fallback.go

// Package fallback holds the bundled placeholder catalog shown while the
// live store is empty or unreachable. The data is built once from typed
// models and handed out as deep copies, so callers may mutate what they get.
package fallback

import (
	"sync"

	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
	"github.com/dalemusser/researchhub/internal/domain/models"
)

const seedTime = "2024-01-01T00:00:00.000Z"

var (
	once    sync.Once
	catalog map[registry.EntityType][]docstore.Document
)

// For returns a copy of the placeholder documents for t. Types without
// bundled data yield an empty, non-nil slice.
//
// The catalog holds entries for curated types too; whether they are ever
// shown is the registry's decision, not this package's.
func For(t registry.EntityType) []docstore.Document {
	once.Do(build)
	return docstore.CloneAll(catalog[t])
}

// Has reports whether any placeholder data is bundled for t.
func Has(t registry.EntityType) bool {
	once.Do(build)
	return len(catalog[t]) > 0
}

func build() {
	catalog = map[registry.EntityType][]docstore.Document{
		registry.People:        mustDocs(people()),
		registry.Publications:  mustDocs(publications()),
		registry.Projects:      mustDocs(projects()),
		registry.Achievements:  mustDocs(achievements()),
		registry.ResearchAreas: mustDocs(researchAreas()),
		registry.PhotoGallery:  mustDocs(photos()),
		registry.News:          mustDocs(news()),
		registry.Settings:      mustDocs(settings()),
	}
}

// mustDocs panics on failure: the inputs are static values that always encode.
func mustDocs[T any](items []T) []docstore.Document {
	out := make([]docstore.Document, 0, len(items))
	for _, it := range items {
		d, err := docstore.FromStruct(it)
		if err != nil {
			panic("fallback: " + err.Error())
		}
		out = append(out, d)
	}
	return out
}

func people() []models.Person {
	return []models.Person{
		{
			ID:                "mock-person-1",
			Name:              "Dr. Jane Smith",
			Title:             "Principal Investigator",
			Category:          models.PersonAdvisor,
			Bio:               "Leads the group's work on machine learning for scientific data.",
			ResearchInterests: []string{"Machine Learning", "Data Mining"},
			SocialLinks:       map[string]string{},
			CreatedAt:         seedTime,
			UpdatedAt:         seedTime,
		},
	}
}

func publications() []models.Publication {
	return []models.Publication{
		{
			ID:              "mock-publication-1",
			Title:           "Sample Publication on Deep Learning",
			Authors:         []string{"J. Smith", "A. Lee"},
			PublicationType: models.PublicationJournal,
			Year:            2024,
			JournalName:     "Journal of Sample Research",
			Keywords:        []string{"deep learning"},
			CreatedAt:       seedTime,
			UpdatedAt:       seedTime,
		},
	}
}

func projects() []models.Project {
	return []models.Project{
		{
			ID:           "mock-project-1",
			Name:         "Intelligent Sensing Platform",
			Description:  "An end-to-end platform for collecting and analyzing sensor data.",
			Status:       models.ProjectOngoing,
			StartDate:    "2023-01-01T00:00:00.000Z",
			TeamLeader:   "Dr. Jane Smith",
			TeamMembers:  []string{"Alex Kim", "Maria Garcia"},
			FundedBy:     "National Science Foundation",
			ResearchArea: "Machine Learning",
			CreatedAt:    seedTime,
			UpdatedAt:    seedTime,
		},
		{
			ID:           "mock-project-2",
			Name:         "Open Data Toolkit",
			Description:  "Reusable tooling for publishing research datasets.",
			Status:       models.ProjectCompleted,
			StartDate:    "2021-06-01T00:00:00.000Z",
			EndDate:      "2023-05-31T00:00:00.000Z",
			TeamLeader:   "Dr. Jane Smith",
			TeamMembers:  []string{"Chen Wei"},
			ResearchArea: "Data Systems",
			CreatedAt:    seedTime,
			UpdatedAt:    seedTime,
		},
	}
}

func achievements() []models.Achievement {
	return []models.Achievement{
		{
			ID:          "mock-achievement-1",
			Name:        "Best Research Paper Award",
			Year:        2024,
			Description: "Recognized for outstanding contribution to the field.",
			Category:    "award",
			CreatedAt:   seedTime,
			UpdatedAt:   seedTime,
		},
		{
			ID:          "mock-achievement-2",
			Name:        "Research Grant Success",
			Year:        2023,
			Description: "Secured multi-year funding for the group's core research program.",
			Category:    "funding",
			CreatedAt:   seedTime,
			UpdatedAt:   seedTime,
		},
	}
}

func researchAreas() []models.ResearchArea {
	return []models.ResearchArea{
		{
			ID:                  "mock-area-1",
			Title:               "Machine Learning",
			Description:         "Learning algorithms for scientific and engineering data.",
			DetailedDescription: "We develop models that learn from limited, noisy measurements.",
			ResearchObjectives:  []string{"Robust learning from small datasets", "Interpretable models"},
			KeyApplications:     []string{"Healthcare", "Environmental monitoring"},
			CreatedAt:           seedTime,
			UpdatedAt:           seedTime,
		},
		{
			ID:                  "mock-area-2",
			Title:               "Data Systems",
			Description:         "Infrastructure for storing and sharing research data.",
			DetailedDescription: "Our systems work focuses on reproducible data pipelines.",
			ResearchObjectives:  []string{"Reproducible pipelines"},
			KeyApplications:     []string{"Open science"},
			CreatedAt:           seedTime,
			UpdatedAt:           seedTime,
		},
	}
}

func photos() []models.Photo {
	return []models.Photo{
		{
			ID:        "mock-photo-1",
			URL:       "/assets/images/placeholder-lab.jpg",
			Title:     "Our Lab",
			Category:  "lab",
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:        "mock-photo-2",
			URL:       "/assets/images/placeholder-team.jpg",
			Title:     "Team Retreat",
			Category:  "team",
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
	}
}

func news() []models.NewsItem {
	return []models.NewsItem{
		{
			ID:            "mock-news-1",
			Title:         "Welcome to the Research Group",
			Content:       "<p>Our new website is live.</p>",
			Excerpt:       "Our new website is live.",
			Author:        "Admin",
			PublishedDate: seedTime,
			Category:      models.NewsCategoryNews,
			Status:        models.NewsPublished,
			Tags:          []string{"announcement"},
			CreatedAt:     seedTime,
			UpdatedAt:     seedTime,
		},
	}
}

func settings() []models.SiteSettings {
	return []models.SiteSettings{
		{
			ID:               "mock-settings",
			SiteName:         models.DefaultSiteName,
			ContactEmail:     "contact@example.edu",
			ShowNewsOnHome:   true,
			ShowEventsOnHome: true,
			UpdatedAt:        seedTime,
		},
	}
}
