package filter

import (
	"testing"

	"moviemonk/models"
)

func item(id int64, title, date string, rating, popularity float64, genres []int, lang string, adult bool) models.CatalogItem {
	return models.CatalogItem{
		Kind:             models.MediaKindMovie,
		ID:               id,
		Title:            title,
		ReleaseDate:      date,
		VoteAverage:      rating,
		Popularity:       popularity,
		GenreIDs:         genres,
		OriginalLanguage: lang,
		Adult:            adult,
	}
}

func ids(items []models.CatalogItem) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestApplyDefaultSpecKeepsEverythingDated(t *testing.T) {
	items := []models.CatalogItem{
		item(1, "A", "2020-01-01", 7.5, 100, []int{28}, "en", false),
		item(2, "B", "1999-06-15", 5.0, 50, []int{18}, "fr", false),
		item(3, "C", "", 9.0, 200, nil, "en", false),
	}

	got := Apply(items, DefaultSpec())
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	for _, it := range got {
		if it.ID == 3 {
			t.Fatal("item with no release date should be excluded by the year range")
		}
	}
}

func TestApplyPredicatesAreConjunctive(t *testing.T) {
	items := []models.CatalogItem{
		item(1, "Hit", "2021-03-01", 8.0, 10, []int{28, 12}, "en", false),
		item(2, "WrongYear", "1980-03-01", 8.0, 10, []int{28}, "en", false),
		item(3, "WrongRating", "2021-03-01", 3.0, 10, []int{28}, "en", false),
		item(4, "WrongGenre", "2021-03-01", 8.0, 10, []int{99}, "en", false),
		item(5, "WrongLang", "2021-03-01", 8.0, 10, []int{28}, "ja", false),
	}

	spec := DefaultSpec()
	spec.YearRange = [2]int{2000, 2025}
	spec.RatingRange = [2]float64{6, 10}
	spec.Genres = []int{28}
	spec.Languages = []string{"en"}

	got := Apply(items, spec)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only item 1 to survive, got %v", ids(got))
	}
}

func TestApplyEmptySetsDisableGenreAndLanguage(t *testing.T) {
	items := []models.CatalogItem{
		item(1, "A", "2020-01-01", 7, 10, []int{16}, "ko", false),
		item(2, "B", "2020-01-01", 7, 20, nil, "de", false),
	}

	spec := DefaultSpec()
	spec.Genres = nil
	spec.Languages = nil

	if got := Apply(items, spec); len(got) != 2 {
		t.Fatalf("expected both items kept, got %v", ids(got))
	}
}

func TestApplyAdultExcludedByDefault(t *testing.T) {
	items := []models.CatalogItem{
		item(1, "Clean", "2020-01-01", 7, 10, nil, "en", false),
		item(2, "Adult", "2020-01-01", 7, 20, nil, "en", true),
	}

	got := Apply(items, DefaultSpec())
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("adult item should be excluded, got %v", ids(got))
	}

	spec := DefaultSpec()
	spec.IncludeAdult = true
	if got := Apply(items, spec); len(got) != 2 {
		t.Fatalf("adult item should be included when opted in, got %v", ids(got))
	}
}

func TestApplySortOrders(t *testing.T) {
	items := []models.CatalogItem{
		item(1, "Bravo", "2018-01-01", 6.0, 30, nil, "en", false),
		item(2, "Alpha", "2022-01-01", 9.0, 10, nil, "en", false),
		item(3, "Charlie", "2020-01-01", 7.5, 20, nil, "en", false),
	}

	cases := []struct {
		key  SortKey
		want []int64
	}{
		{SortPopularityDesc, []int64{1, 3, 2}},
		{SortPopularityAsc, []int64{2, 3, 1}},
		{SortRatingDesc, []int64{2, 3, 1}},
		{SortRatingAsc, []int64{1, 3, 2}},
		{SortDateDesc, []int64{2, 3, 1}},
		{SortDateAsc, []int64{1, 3, 2}},
		{SortTitleAsc, []int64{2, 1, 3}},
		{SortTitleDesc, []int64{3, 1, 2}},
	}

	for _, tc := range cases {
		spec := DefaultSpec()
		spec.SortBy = tc.key
		got := ids(Apply(items, spec))
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("%s: expected %v, got %v", tc.key, tc.want, got)
				break
			}
		}
	}
}

func TestApplyStableForEqualKeys(t *testing.T) {
	items := []models.CatalogItem{
		item(1, "A", "2020-01-01", 7, 50, nil, "en", false),
		item(2, "B", "2020-01-01", 7, 50, nil, "en", false),
		item(3, "C", "2020-01-01", 7, 50, nil, "en", false),
	}

	got := ids(Apply(items, DefaultSpec()))
	want := []int64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected input order preserved for ties, got %v", got)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := []models.CatalogItem{
		item(1, "B", "2020-01-01", 7, 10, nil, "en", false),
		item(2, "A", "2021-01-01", 8, 20, nil, "en", false),
	}

	spec := DefaultSpec()
	spec.SortBy = SortTitleAsc
	Apply(items, spec)

	if items[0].ID != 1 || items[1].ID != 2 {
		t.Fatal("input slice was reordered")
	}
}

func TestParseSortKey(t *testing.T) {
	if key, ok := ParseSortKey("vote_average.desc"); !ok || key != SortRatingDesc {
		t.Fatalf("expected vote_average.desc to parse, got %q ok=%v", key, ok)
	}
	if _, ok := ParseSortKey("runtime.desc"); ok {
		t.Fatal("unknown sort key should not parse")
	}
}
