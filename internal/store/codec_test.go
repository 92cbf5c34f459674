package store

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
)

func TestEncodeFormat(t *testing.T) {
	b, err := Encode([]model.Todo{{
		ID:        "01J0",
		Title:     "Buy milk",
		Completed: true,
		CreatedAt: time.UnixMilli(1700000000123),
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"01J0","title":"Buy milk","completed":true,"createdAt":1700000000123}]`, string(b))

	empty, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestDecodeRoundTrip(t *testing.T) {
	want := []model.Todo{
		{ID: "b", Title: "second", CreatedAt: time.UnixMilli(1700000001000)},
		{ID: "a", Title: "first", Completed: true, CreatedAt: time.UnixMilli(1700000000999)},
	}
	b, err := Encode(want)
	require.NoError(t, err)
	got, skipped, err := Decode(b)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeAcceptsForeignWriters(t *testing.T) {
	// fractional timestamps and extra fields are tolerated
	got, _, err := Decode([]byte(`[{"id":"X1","title":"t","completed":false,"createdAt":1700000000000.5,"extra":1}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1700000000000), got[0].CreatedAt.UnixMilli())
}

func TestDecodeDropsDuplicateIDs(t *testing.T) {
	got, skipped, err := Decode([]byte(`[
		{"id":"a","title":"one","completed":false,"createdAt":1},
		{"id":"a","title":"two","completed":true,"createdAt":2},
		{"id":"b","title":"three","completed":false,"createdAt":3}
	]`))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Title)
	assert.Equal(t, "b", got[1].ID)
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0].Error(), `duplicate id "a"`)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty input", ``},
		{"truncated", `[{"id":"a"`},
		{"number", `42`},
		{"object", `{}`},
		{"null", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestDecodeDropsInvalidRecords(t *testing.T) {
	const valid = `{"id":"ok","title":"keep me","completed":false,"createdAt":1}`
	tests := []struct {
		name    string
		invalid string
	}{
		{"missing id", `{"title":"t","completed":false,"createdAt":1}`},
		{"empty id", `{"id":"","title":"t","completed":false,"createdAt":1}`},
		{"missing createdAt", `{"id":"b","title":"legacy","completed":false}`},
		{"string createdAt", `{"id":"b","title":"t","completed":false,"createdAt":"yesterday"}`},
		{"createdAt too large", `{"id":"b","title":"t","completed":false,"createdAt":1e300}`},
		{"createdAt too small", `{"id":"b","title":"t","completed":false,"createdAt":-1e300}`},
		{"empty title", `{"id":"b","title":"","completed":false,"createdAt":1}`},
		{"string completed", `{"id":"b","title":"t","completed":"no","createdAt":1}`},
		{"element not object", `"b"`},
		{"element null", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped, err := Decode([]byte("[" + valid + "," + tt.invalid + "]"))
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "ok", got[0].ID)
			assert.Equal(t, "keep me", got[0].Title)
			require.Len(t, skipped, 1)
			assert.Contains(t, skipped[0].Error(), "record 1")
		})
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	got, skipped, err := Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Empty(t, got)
}
