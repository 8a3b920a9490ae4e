package filter_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/hbnb-web/internal/application/filter"
	"github.com/zatekoja/hbnb-web/internal/domain/entities"
)

func snapshot() []entities.Place {
	return []entities.Place{
		{ID: "1", Price: 150, CityID: "paris"},
		{ID: "2", Price: 300, CityID: "paris"},
		{ID: "3", Price: 80, CityID: "lyon"},
		{ID: "4", Price: 200, CityID: "lyon"},
	}
}

func ids(places []entities.Place) []string {
	out := make([]string, 0, len(places))
	for _, p := range places {
		out = append(out, p.ID.String())
	}
	return out
}

func TestPriceCeiling_KeepsSubsetInOrder(t *testing.T) {
	tests := []struct {
		name     string
		maxPrice string
		want     []string
	}{
		{name: "unset", maxPrice: "", want: []string{"1", "2", "3", "4"}},
		{name: "all", maxPrice: "all", want: []string{"1", "2", "3", "4"}},
		{name: "unparseable", maxPrice: "cheap", want: []string{"1", "2", "3", "4"}},
		{name: "inclusive ceiling", maxPrice: "200", want: []string{"1", "3", "4"}},
		{name: "low ceiling", maxPrice: "100", want: []string{"3"}},
		{name: "nothing matches", maxPrice: "10", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.Places{MaxPrice: tt.maxPrice}.Apply(snapshot())
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestLocationMatch(t *testing.T) {
	got := filter.Places{Location: "lyon"}.Apply(snapshot())
	assert.Equal(t, []string{"3", "4"}, ids(got))

	got = filter.Places{Location: "  "}.Apply(snapshot())
	assert.Len(t, got, 4)
}

func TestFiltersCompose(t *testing.T) {
	got := filter.Places{MaxPrice: "200", Location: "paris"}.Apply(snapshot())
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestRelaxingPriceRestoresItemsWhileLocationStays(t *testing.T) {
	source := snapshot()

	narrowed := filter.Places{MaxPrice: "100", Location: "lyon"}.Apply(source)
	assert.Equal(t, []string{"3"}, ids(narrowed))

	relaxed := filter.Places{MaxPrice: "", Location: "lyon"}.Apply(source)
	assert.Equal(t, []string{"3", "4"}, ids(relaxed))
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	source := snapshot()
	_ = filter.Places{MaxPrice: "100"}.Apply(source)

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(source))
}

func TestApply_GenericPredicates(t *testing.T) {
	words := []string{"a", "bb", "ccc"}
	long := func(s string) bool { return len(s) > 1 }

	assert.Equal(t, []string{"bb", "ccc"}, filter.Apply(words, long))
	assert.Equal(t, words, filter.Apply(words))
	assert.Equal(t, words, filter.Apply(words, nil))
}

func TestFromQuery(t *testing.T) {
	f := filter.FromQuery(url.Values{"max_price": {"50"}, "location": {"nice"}})

	assert.Equal(t, filter.Places{MaxPrice: "50", Location: "nice"}, f)
	assert.True(t, f.Active())
	assert.False(t, filter.FromQuery(url.Values{}).Active())
	assert.False(t, filter.Places{MaxPrice: "all"}.Active())
}

func TestLocations_DistinctSorted(t *testing.T) {
	places := append(snapshot(), entities.Place{ID: "5"})

	assert.Equal(t, []string{"lyon", "paris"}, filter.Locations(places))
}
