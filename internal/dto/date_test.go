package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateUnmarshalJSON(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Expected time.Time
	}{
		{Name: "calendar date", Input: `"2025-03-01"`, Expected: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "rfc3339", Input: `"2025-03-01T10:30:00Z"`, Expected: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)},
		{Name: "local timestamp", Input: `"2025-03-01T10:30:00"`, Expected: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tc.Input), &d))
			assert.True(t, tc.Expected.Equal(d.Time))
		})
	}
}

func TestDateUnmarshalJSONRejectsGarbage(t *testing.T) {
	var d Date

	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}
