package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{in: "", want: FilterAll},
		{in: "all", want: FilterAll},
		{in: "Active", want: FilterActive},
		{in: " completed ", want: FilterCompleted},
		{in: "done", want: FilterCompleted},
		{in: "pending", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilter(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterMatch(t *testing.T) {
	open := Todo{ID: "a", Title: "open"}
	closed := Todo{ID: "b", Title: "closed", Completed: true}

	assert.True(t, FilterAll.Match(open))
	assert.True(t, FilterAll.Match(closed))
	assert.True(t, FilterActive.Match(open))
	assert.False(t, FilterActive.Match(closed))
	assert.False(t, FilterCompleted.Match(open))
	assert.True(t, FilterCompleted.Match(closed))
}

func TestFilterCycle(t *testing.T) {
	assert.Equal(t, FilterActive, FilterAll.Next())
	assert.Equal(t, FilterCompleted, FilterActive.Next())
	assert.Equal(t, FilterAll, FilterCompleted.Next())
	assert.Equal(t, FilterCompleted, FilterAll.Prev())
	assert.Equal(t, "Completed", FilterCompleted.Label())
	assert.Equal(t, "active", FilterActive.String())
}
