package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCohortLabel(t *testing.T) {
	assert.Equal(t, "6A", CohortLabel("6", "A"))
	assert.Equal(t, "P7Blue", CohortLabel("P7", "Blue"))
	assert.Equal(t, "6", CohortLabel("6", ""))
}

func TestDecisionValid(t *testing.T) {
	assert.True(t, DecisionRetain.Valid())
	assert.True(t, DecisionPromote.Valid())
	assert.True(t, DecisionConditionalPromote.Valid())
	assert.False(t, Decision("graduate").Valid())
	assert.False(t, Decision("").Valid())
}

func TestDecisionPromotes(t *testing.T) {
	assert.True(t, DecisionPromote.Promotes())
	assert.True(t, DecisionConditionalPromote.Promotes())
	assert.False(t, DecisionRetain.Promotes())
}

func TestCustomDateJSON(t *testing.T) {
	var cd CustomDate
	require.NoError(t, json.Unmarshal([]byte(`"2025-04-01"`), &cd))
	assert.Equal(t, 2025, cd.Year())
	assert.Equal(t, time.April, cd.Month())
	assert.Equal(t, 1, cd.Day())

	out, err := json.Marshal(cd)
	require.NoError(t, err)
	assert.Equal(t, `"2025-04-01"`, string(out))
}

func TestCustomDateUnmarshalNull(t *testing.T) {
	var cd CustomDate
	require.NoError(t, json.Unmarshal([]byte(`null`), &cd))
	assert.True(t, cd.IsZero())
}

func TestCustomDateUnmarshalRejectsBadFormat(t *testing.T) {
	var cd CustomDate
	assert.Error(t, json.Unmarshal([]byte(`"01/04/2025"`), &cd))
}

func TestCustomDateScan(t *testing.T) {
	var cd CustomDate
	ts := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, cd.Scan(ts))
	assert.True(t, cd.Equal(ts))

	require.NoError(t, cd.Scan(nil))
	assert.True(t, cd.IsZero())

	assert.Error(t, cd.Scan("2025-04-01"))
}

func TestWeightedTotal(t *testing.T) {
	even := DefaultGradingWeights("class-id")
	assert.InDelta(t, 75.0, even.WeightedTotal(80, 70, 60, 90), 0.001)

	examHeavy := &GradingWeights{Weight1: 10, Weight2: 10, WeightMid: 30, WeightFinal: 50}
	assert.InDelta(t, 78.0, examHeavy.WeightedTotal(80, 70, 60, 90), 0.001)

	assert.InDelta(t, 0.0, even.WeightedTotal(0, 0, 0, 0), 0.001)
	assert.InDelta(t, 100.0, even.WeightedTotal(100, 100, 100, 100), 0.001)
}
