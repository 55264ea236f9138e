package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		raw  string
		want Category
		ok   bool
	}{
		{"pan", CategoryPan, true},
		{"Pasteles", CategoryPasteles, true},
		{" bebidas ", CategoryBebidas, true},
		{"reposteria", CategoryReposteria, true},
		// legacy identifiers from the old static menu
		{"panes", CategoryPan, true},
		{"pasteleria", CategoryReposteria, true},
		{"empanadas", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizeCategory(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}

func TestOrderShortID(t *testing.T) {
	o := Order{ID: "3f2504e0-4f89-11d3-9a0c-0305e82c3301"}
	assert.Equal(t, "3f2504e0", o.ShortID())

	short := Order{ID: "abc"}
	assert.Equal(t, "abc", short.ShortID())
}
