package main

import (
	"reflect"
	"testing"
)

func TestParseScalar(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"false", false},
		{"42", 42.0},
		{"0.5", 0.5},
		{"-3", -3.0},
		{"sunny", "sunny"},
		{"", ""},
		{"truthy", "truthy"},
		{"1e3", 1000.0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseScalar(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseScalar(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestSortedKeys(t *testing.T) {
	keys := sortedKeys(map[string]any{"c": 1, "a": 2, "b": 3})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("sortedKeys() = %v, want %v", keys, want)
	}
}
