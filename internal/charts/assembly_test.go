package charts

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/coverage-dashboard/internal/aggregate"
	"github.com/lueurxax/coverage-dashboard/internal/core/domain"
)

func TestMeltPct_OnePointPerProviderAndNetwork(t *testing.T) {
	groups := []aggregate.GroupPct{
		{Group: "Claro", Pct: map[string]float64{domain.ColCoverage2G: 100, domain.ColCoverage5G: 33.33}},
		{Group: "Tigo", Pct: map[string]float64{domain.ColCoverage2G: 50, domain.ColCoverage5G: 0}},
	}

	got := MeltPct(groups, []string{domain.ColCoverage2G, domain.ColCoverage5G})

	assert.Equal(t, []Point{
		{Group: "Claro", Category: "2G", Value: 100},
		{Group: "Claro", Category: "5G", Value: 33.33},
		{Group: "Tigo", Category: "2G", Value: 50},
		{Group: "Tigo", Category: "5G", Value: 0},
	}, got)
	assert.Equal(t, []string{"2G", "5G"}, Categories(got))
}

func TestFromCountsAndPairs(t *testing.T) {
	counts := FromCounts([]aggregate.Count{{Value: "Claro", Count: 3}, {Value: "Tigo", Count: 1}})
	assert.Equal(t, []Point{{Group: "Claro", Value: 3}, {Group: "Tigo", Value: 1}}, counts)

	pairs := FromPairs([]aggregate.PairCount{{Column: domain.ColCoverage4G, Value: domain.FlagNo, Count: 2}})
	assert.Equal(t, []Point{{Group: "4G", Category: "NO", Value: 2}}, pairs)
}

func TestFromGroupValues_RoundsAndSorts(t *testing.T) {
	values := []aggregate.GroupValue{
		{Group: "A", Value: 10.456},
		{Group: "B", Value: math.NaN()},
		{Group: "C", Value: 12.001},
		{Group: "D", Value: 10.456},
	}

	got := FromGroupValues(values, 2, true)

	assert.Equal(t, "C", got[0].Group)
	assert.Equal(t, 12.0, got[0].Value)
	assert.Equal(t, "A", got[1].Group, "stable for ties")
	assert.Equal(t, 10.46, got[1].Value)
	assert.Equal(t, "D", got[2].Group)
	assert.Equal(t, "B", got[3].Group, "NaN last")
	assert.True(t, math.IsNaN(got[3].Value))

	unsorted := FromGroupValues(values, 0, false)
	assert.Equal(t, "A", unsorted[0].Group)
	assert.Equal(t, 10.0, unsorted[0].Value)
}

func TestPoint_MarshalJSONMissingValue(t *testing.T) {
	raw, err := json.Marshal([]Point{{Group: "A", Value: math.NaN()}, {Group: "B", Category: "5G", Value: 1.5}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"group":"A","value":null},{"group":"B","category":"5G","value":1.5}]`, string(raw))
}
