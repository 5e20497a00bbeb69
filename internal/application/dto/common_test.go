package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooseString(t *testing.T) {
	tests := []struct {
		body string
		want LooseString
	}{
		{`{"field":"quantity_in","value":"abc"}`, "abc"},
		{`{"field":"quantity_in","value":12}`, "12"},
		{`{"field":"quantity_in","value":12.50}`, "12.50"},
		{`{"field":"quantity_in","value":null}`, ""},
		{`{"field":"notes","value":true}`, "true"},
	}
	for _, tc := range tests {
		var req UpdateFieldRequest
		require.NoError(t, json.Unmarshal([]byte(tc.body), &req), tc.body)
		assert.Equal(t, tc.want, req.Value, tc.body)
	}

	var req UpdateFieldRequest
	assert.Error(t, json.Unmarshal([]byte(`{"value":{"a":1}}`), &req))
}

func TestPageRequest_Bounds(t *testing.T) {
	p := PageRequest{}
	start, end := p.Bounds(7)
	assert.Equal(t, 0, start)
	assert.Equal(t, 7, end, "sin límite devuelve todo")

	p = PageRequest{Limit: 3, Offset: 5}
	start, end = p.Bounds(7)
	assert.Equal(t, 5, start)
	assert.Equal(t, 7, end)

	p = PageRequest{Limit: 3, Offset: 10}
	start, end = p.Bounds(7)
	assert.Equal(t, 7, start)
	assert.Equal(t, 7, end)

	p = PageRequest{Limit: -1, Offset: -4}
	p.DefaultPage()
	assert.Equal(t, PageRequest{}, p)
}
