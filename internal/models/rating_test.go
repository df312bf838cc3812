package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingUnmarshalRecordForm(t *testing.T) {
	data := []byte(`{"rating":4,"raterId":"u2","review":"solid","timestamp":"2026-08-30T12:00:00Z"}`)

	var rating Rating
	require.NoError(t, json.Unmarshal(data, &rating))

	assert.Equal(t, 4, rating.Score)
	assert.Equal(t, "u2", rating.RaterID)
	assert.Equal(t, "solid", rating.Review)
	assert.Equal(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), rating.Timestamp)
}

func TestRatingUnmarshalLegacyBareNumber(t *testing.T) {
	var ledger []Rating
	require.NoError(t, json.Unmarshal([]byte(`[5, {"rating":3,"raterId":"u9"}]`), &ledger))

	require.Len(t, ledger, 2)
	assert.Equal(t, 5, ledger[0].Score)
	assert.Empty(t, ledger[0].RaterID)
	assert.Equal(t, 3, ledger[1].Score)
	assert.Equal(t, "u9", ledger[1].RaterID)
}

func TestLedgersByCategory(t *testing.T) {
	ledgers := RatingLedgers{
		Driver: []Rating{{Score: 5}},
		Rider:  []Rating{{Score: 2}},
	}

	assert.Equal(t, 5, ledgers.ByCategory(RatingCategoryDriver)[0].Score)
	assert.Equal(t, 2, ledgers.ByCategory(RatingCategoryRider)[0].Score)

	ledgers.SetCategory(RatingCategoryRider, nil)
	assert.Nil(t, ledgers.Rider)
	assert.Len(t, ledgers.Driver, 1)
}
