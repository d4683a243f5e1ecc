package services

import (
	"strings"

	"github.com/skillquest/backend/models"
)

// Price buckets for catalog filtering.
const (
	PriceBucketFree    = "free"
	PriceBucketPaid    = "paid"
	PriceBucketPremium = "premium"

	premiumPriceFloor = 100
)

// CatalogFilter narrows an in-memory course list. Empty fields are
// wildcards; set fields compose with AND.
type CatalogFilter struct {
	Search   string
	Category string
	Level    string
	Price    string
}

func (f CatalogFilter) Empty() bool {
	return f.Search == "" && f.Category == "" && f.Level == "" && f.Price == ""
}

// FilterCourses applies the filter over already-fetched courses. The search
// term matches title, description and instructor name case-insensitively;
// instructorNames maps instructor id to display name.
func FilterCourses(courses []models.Course, instructorNames map[uint]string, f CatalogFilter) []models.Course {
	if f.Empty() {
		return courses
	}

	search := strings.ToLower(f.Search)
	result := make([]models.Course, 0, len(courses))
	for _, course := range courses {
		if f.Category != "" && course.Category != f.Category {
			continue
		}
		if f.Level != "" && course.Level != f.Level {
			continue
		}
		if f.Price != "" && !matchesPriceBucket(course.Price, f.Price) {
			continue
		}
		if search != "" && !matchesSearch(course, instructorNames[course.InstructorID], search) {
			continue
		}
		result = append(result, course)
	}

	return result
}

func matchesSearch(course models.Course, instructor, search string) bool {
	return strings.Contains(strings.ToLower(course.Title), search) ||
		strings.Contains(strings.ToLower(course.Description), search) ||
		strings.Contains(strings.ToLower(instructor), search)
}

func matchesPriceBucket(price float64, bucket string) bool {
	switch bucket {
	case PriceBucketFree:
		return price == 0
	case PriceBucketPaid:
		return price > 0 && price < premiumPriceFloor
	case PriceBucketPremium:
		return price >= premiumPriceFloor
	}
	return true
}
