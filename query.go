package agrisite

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CategoryAll is the sentinel filter value that disables category filtering.
const CategoryAll = "All"

// BookSort selects the ordering of a book listing.
type BookSort string

const (
	BookSortTitle  BookSort = "title"
	BookSortAuthor BookSort = "author"
	BookSortRating BookSort = "rating"
)

// PostSort selects the ordering of a blog listing.
type PostSort string

const (
	PostSortDate   PostSort = "date"
	PostSortTitle  PostSort = "title"
	PostSortAuthor PostSort = "author"
)

// QueryBooks filters and orders an already-fetched book collection. It never
// touches the store: listings re-run it locally on every keystroke. The sort
// is stable, so ties keep their fetch order.
func QueryBooks(books []Book, term, category string, key BookSort) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if matchesCategory(category, b.Category) && matchesTerm(term, b.Title, b.Author) {
			out = append(out, b)
		}
	}
	col := newCollator()
	switch key {
	case BookSortAuthor:
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Author, out[j].Author) < 0
		})
	case BookSortRating:
		// Descending; books without a rating sort last.
		sort.SliceStable(out, func(i, j int) bool {
			return ratingOf(out[i]) > ratingOf(out[j])
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Title, out[j].Title) < 0
		})
	}
	return out
}

// QueryCourses filters an already-fetched course collection by search term
// and category, preserving fetch order.
func QueryCourses(courses []Course, term, category string) []Course {
	out := make([]Course, 0, len(courses))
	for _, c := range courses {
		if matchesCategory(category, c.Category) && matchesTerm(term, c.Title, c.Instructor) {
			out = append(out, c)
		}
	}
	return out
}

// QueryPosts filters and orders an already-fetched blog collection.
func QueryPosts(posts []BlogPost, term, category string, key PostSort) []BlogPost {
	out := make([]BlogPost, 0, len(posts))
	for _, p := range posts {
		if matchesCategory(category, p.Category) && matchesTerm(term, p.Title, p.Excerpt, p.Content, p.Author) {
			out = append(out, p)
		}
	}
	col := newCollator()
	switch key {
	case PostSortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Title, out[j].Title) < 0
		})
	case PostSortAuthor:
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Author, out[j].Author) < 0
		})
	default:
		// Newest first. Timestamps are RFC 3339 strings, which order
		// lexicographically.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt > out[j].CreatedAt
		})
	}
	return out
}

// PostCategories returns the category filter options for a blog listing:
// "All" first, then each distinct category in fetch order.
func PostCategories(posts []BlogPost) []string {
	categories := []string{CategoryAll}
	seen := make(map[string]struct{})
	for _, p := range posts {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

// matchesTerm reports whether term is a case-insensitive substring of at
// least one field. An empty term matches everything.
func matchesTerm(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func matchesCategory(filter, category string) bool {
	return filter == "" || filter == CategoryAll || filter == category
}

// newCollator builds a locale-aware string comparator. Collators carry
// internal buffers and are not safe for concurrent use, so each query gets
// its own.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}

func ratingOf(b Book) int {
	if b.Rating == nil {
		return 0
	}
	return *b.Rating
}
