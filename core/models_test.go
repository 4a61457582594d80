package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	id1 := IDFromContent("2020 Renault Clio|650.000 TL|istanbul")
	id2 := IDFromContent("2020 Renault Clio|650.000 TL|istanbul")
	id3 := IDFromContent("2019 Renault Clio|650.000 TL|istanbul")

	assert.Equal(t, id1, id2, "same content must produce same ID")
	assert.NotEqual(t, id1, id3, "different content must produce different IDs")
	assert.Len(t, id1, 16, "8-byte hash hex encodes to 16 characters")
}

func TestFilterModeString(t *testing.T) {
	assert.Equal(t, "strict", FilterModeStrict.String())
	assert.Equal(t, "weighted", FilterModeWeighted.String())
	assert.Equal(t, "unknown", FilterMode(0).String())
}

func TestSortPolicyString(t *testing.T) {
	assert.Equal(t, "default", SortDefault.String())
	assert.Equal(t, "priceAscending", SortPriceAscending.String())
	assert.Equal(t, "distanceAscending", SortDistanceAscending.String())
	assert.Equal(t, "bestMatch", SortBestMatch.String())
}

func TestCriteriaIsEmpty(t *testing.T) {
	c := &Criteria{}
	assert.True(t, c.IsEmpty())

	c.Sort = SortPriceAscending
	assert.True(t, c.IsEmpty(), "sort policy alone is not a constraint")

	budget := 500000
	c.BudgetMax = &budget
	assert.False(t, c.IsEmpty())

	c = &Criteria{Brands: []string{"renault"}}
	assert.False(t, c.IsEmpty())
}
