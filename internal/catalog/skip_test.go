package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYardsAndRoadPlacement(t *testing.T) {
	t.Parallel()

	cases := []struct {
		size   string
		yards  int
		onRoad bool
	}{
		{size: "4 Yards", yards: 4, onRoad: true},
		{size: "8 Yards", yards: 8, onRoad: true},
		{size: "10 Yards", yards: 10, onRoad: false},
		{size: " 12yd", yards: 12, onRoad: false},
		{size: "Yards", yards: 0, onRoad: false},
		{size: "", yards: 0, onRoad: false},
	}
	for _, tc := range cases {
		option := SkipOption{Size: tc.size}
		assert.Equal(t, tc.yards, option.Yards(), "size %q", tc.size)
		assert.Equal(t, tc.onRoad, option.RoadPlacementAllowed(), "size %q", tc.size)
	}
}

func TestReferenceCatalogShape(t *testing.T) {
	t.Parallel()

	skips := ReferenceCatalog()
	require.Len(t, skips, 8)
	require.NoError(t, Validate(skips))

	six, ok := Find(skips, "6-yard")
	require.True(t, ok)
	assert.Equal(t, "6 Yard Skip", six.Name)
	assert.Equal(t, 300, six.Price)
	assert.True(t, six.Popular)

	popular := 0
	for _, skip := range skips {
		if skip.Popular {
			popular++
		}
	}
	assert.Equal(t, 1, popular)
}

func TestReferenceCatalogReturnsCopies(t *testing.T) {
	t.Parallel()

	first := ReferenceCatalog()
	first[0].Name = "mutated"
	first[0].Suitable[0] = "mutated"

	second := ReferenceCatalog()
	assert.Equal(t, "4 Yard Skip", second[0].Name)
	assert.Equal(t, "Garden waste", second[0].Suitable[0])
}

func TestValidateRejectsDuplicateAndEmptyIDs(t *testing.T) {
	t.Parallel()

	err := Validate([]SkipOption{{ID: "a"}, {ID: "a"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCatalog))

	err = Validate([]SkipOption{{ID: "a"}, {ID: "  "}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCatalog))

	assert.NoError(t, Validate(nil))
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		0:       "£0",
		300:     "£300",
		1250:    "£1,250",
		999999:  "£999,999",
		1000000: "£1,000,000",
		-75:     "-£75",
	}
	for amount, want := range cases {
		assert.Equal(t, want, FormatPrice("£", amount))
	}
}
