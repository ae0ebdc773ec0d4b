package agrisite

import "testing"

func sampleBooks() []Book {
	return []Book{
		{ID: "1", Title: "Crop Rotation", Author: "Zara Bello", Category: "Agronomy", Rating: intp(3)},
		{ID: "2", Title: "Apiary Handbook", Author: "Musa Danladi", Category: "Livestock", Rating: intp(5)},
		{ID: "3", Title: "Soil Chemistry", Author: "Ada Okafor", Category: "Agronomy", Rating: intp(1)},
		{ID: "4", Title: "Farm Economics", Author: "Ada Okafor", Category: "Business"},
	}
}

func TestQueryBooksEmptyTermReturnsAll(t *testing.T) {
	got := QueryBooks(sampleBooks(), "", CategoryAll, BookSortTitle)
	if len(got) != 4 {
		t.Fatalf("count = %d, want 4", len(got))
	}
	// Title order.
	want := []string{"Apiary Handbook", "Crop Rotation", "Farm Economics", "Soil Chemistry"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestQueryBooksTermMatchesTitleOrAuthor(t *testing.T) {
	got := QueryBooks(sampleBooks(), "okafor", "", BookSortTitle)
	if len(got) != 2 {
		t.Fatalf("count = %d, want 2", len(got))
	}
	for _, b := range got {
		if b.Author != "Ada Okafor" {
			t.Errorf("unexpected match %q by %q", b.Title, b.Author)
		}
	}

	got = QueryBooks(sampleBooks(), "SOIL", "", BookSortTitle)
	if len(got) != 1 || got[0].Title != "Soil Chemistry" {
		t.Errorf("case-insensitive title match failed, got %v", got)
	}

	got = QueryBooks(sampleBooks(), "quinoa", "", BookSortTitle)
	if len(got) != 0 {
		t.Errorf("count = %d, want 0 for no match", len(got))
	}
}

func TestQueryBooksCategoryFilter(t *testing.T) {
	got := QueryBooks(sampleBooks(), "", "Agronomy", BookSortTitle)
	if len(got) != 2 {
		t.Fatalf("count = %d, want 2", len(got))
	}
	for _, b := range got {
		if b.Category != "Agronomy" {
			t.Errorf("unexpected category %q", b.Category)
		}
	}

	// "All" and "" both disable the filter.
	if n := len(QueryBooks(sampleBooks(), "", CategoryAll, BookSortTitle)); n != 4 {
		t.Errorf("All count = %d, want 4", n)
	}
	if n := len(QueryBooks(sampleBooks(), "", "", BookSortTitle)); n != 4 {
		t.Errorf("empty count = %d, want 4", n)
	}
}

func TestQueryBooksSortByRating(t *testing.T) {
	got := QueryBooks(sampleBooks(), "", "", BookSortRating)
	if len(got) != 4 {
		t.Fatalf("count = %d, want 4", len(got))
	}
	// Descending; the unrated book sorts last.
	wantIDs := []string{"2", "1", "3", "4"}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestQueryBooksSortByAuthor(t *testing.T) {
	got := QueryBooks(sampleBooks(), "", "", BookSortAuthor)
	// Stable sort: Okafor's two books keep their input order.
	wantIDs := []string{"3", "4", "2", "1"}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestQueryBooksDoesNotMutateInput(t *testing.T) {
	books := sampleBooks()
	QueryBooks(books, "", "", BookSortRating)
	if books[0].ID != "1" || books[3].ID != "4" {
		t.Error("input slice order changed")
	}
}

func TestQueryCourses(t *testing.T) {
	courses := []Course{
		{ID: "1", Title: "Greenhouse Management", Instructor: "Lena Mwangi", Category: "Horticulture"},
		{ID: "2", Title: "Poultry Health", Instructor: "Musa Danladi", Category: "Livestock"},
		{ID: "3", Title: "Organic Certification", Instructor: "Lena Mwangi", Category: "Business"},
	}

	got := QueryCourses(courses, "mwangi", "")
	if len(got) != 2 {
		t.Fatalf("count = %d, want 2", len(got))
	}
	// Fetch order preserved.
	if got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("order = [%s, %s], want fetch order", got[0].ID, got[1].ID)
	}

	got = QueryCourses(courses, "", "Livestock")
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("category filter failed, got %v", got)
	}
}

func samplePosts() []BlogPost {
	return []BlogPost{
		{ID: "1", Title: "Maize Outlook", Author: "Zara Bello", Category: "Markets", Content: "prices", CreatedAt: "2024-03-01T10:00:00Z"},
		{ID: "2", Title: "Beekeeping Diary", Author: "Musa Danladi", Category: "Livestock", Content: "hives", CreatedAt: "2024-01-15T10:00:00Z"},
		{ID: "3", Title: "Cassava Notes", Author: "Ada Okafor", Category: "Markets", Content: "yields and prices", CreatedAt: "2024-02-20T10:00:00Z"},
	}
}

func TestQueryPostsDefaultNewestFirst(t *testing.T) {
	got := QueryPosts(samplePosts(), "", "", PostSortDate)
	wantIDs := []string{"1", "3", "2"}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestQueryPostsTermSearchesContent(t *testing.T) {
	got := QueryPosts(samplePosts(), "prices", "", PostSortDate)
	if len(got) != 2 {
		t.Fatalf("count = %d, want 2", len(got))
	}
}

func TestQueryPostsCategoryAndSort(t *testing.T) {
	got := QueryPosts(samplePosts(), "", "Markets", PostSortTitle)
	if len(got) != 2 {
		t.Fatalf("count = %d, want 2", len(got))
	}
	if got[0].Title != "Cassava Notes" || got[1].Title != "Maize Outlook" {
		t.Errorf("title order = [%s, %s]", got[0].Title, got[1].Title)
	}
}

func TestPostCategories(t *testing.T) {
	got := PostCategories(samplePosts())
	want := []string{"All", "Markets", "Livestock"}
	if len(got) != len(want) {
		t.Fatalf("count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPostCategoriesEmpty(t *testing.T) {
	got := PostCategories(nil)
	if len(got) != 1 || got[0] != CategoryAll {
		t.Errorf("got %v, want [All]", got)
	}
}
