package httpclient

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormFromMap(t *testing.T) {
	name := "Jane"
	var missing *string

	tests := []struct {
		name     string
		data     map[string]any
		expected url.Values
	}{
		{"flat", map[string]any{"email": "jane@example.com", "status": "A"}, url.Values{"email": {"jane@example.com"}, "status": {"A"}}},
		{"numbers", map[string]any{"company_id": 1, "price": 9.5}, url.Values{"company_id": {"1"}, "price": {"9.5"}}},
		{"bools", map[string]any{"is_root": true, "notify": false}, url.Values{"is_root": {"1"}, "notify": {"0"}}},
		{"nested map", map[string]any{"fields": map[string]any{"36": "x", "b_firstname": "Jane"}}, url.Values{"fields[36]": {"x"}, "fields[b_firstname]": {"Jane"}}},
		{"slice", map[string]any{"usergroup_ids": []int{4, 7}}, url.Values{"usergroup_ids[0]": {"4"}, "usergroup_ids[1]": {"7"}}},
		{"deep", map[string]any{"a": map[string]any{"b": []string{"c"}}}, url.Values{"a[b][0]": {"c"}}},
		{"pointers", map[string]any{"firstname": &name, "lastname": missing, "phone": nil}, url.Values{"firstname": {"Jane"}}},
		{"bytes", map[string]any{"raw": []byte("abc")}, url.Values{"raw": {"abc"}}},
		{"empty", map[string]any{}, url.Values{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormFromMap(tt.data))
		})
	}
}

func TestFormFromMap_EncodesBrackets(t *testing.T) {
	values := FormFromMap(map[string]any{"combination": map[int]int{12: 34}})
	assert.Equal(t, "combination%5B12%5D=34", values.Encode())
}
