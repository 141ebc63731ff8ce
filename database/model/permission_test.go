package model

import (
	"strconv"
	"testing"
)

func TestPermissionHas(t *testing.T) {
	tests := []struct {
		name string
		held Permission
		flag Permission
		want bool
	}{
		{"single flag present", PermRead | PermComment, PermComment, true},
		{"single flag absent", PermRead | PermComment, PermWrite, false},
		{"moderate does not imply comment", PermModerate, PermComment, false},
		{"combined flag requires all bits", PermRead | PermWrite, PermRead | PermComment, false},
		{"combined flag fully held", PermRead | PermComment | PermWrite, PermRead | PermWrite, true},
		{"empty mask holds nothing", 0, PermRead, false},
		{"full mask holds everything", allPermissions, PermAdmin, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.held.Has(tc.flag); got != tc.want {
				t.Errorf("(%d).Has(%d) = %v, want %v", tc.held, tc.flag, got, tc.want)
			}
		})
	}
}

func TestParsePermissions(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    Permission
		wantErr bool
	}{
		{"empty input is an empty mask", nil, 0, false},
		{"single flag", []string{"1"}, PermRead, false},
		{"multiple flags combine", []string{"1", "2", "4"}, PermRead | PermComment | PermWrite, false},
		{"full set", []string{"1", "2", "4", "8", "16"}, allPermissions, false},
		{"duplicate flags are idempotent", []string{"2", "2"}, PermComment, false},
		{"unknown bit rejected", []string{"32"}, 0, true},
		{"combined value rejected", []string{"3"}, 0, true},
		{"zero rejected", []string{"0"}, 0, true},
		{"negative rejected", []string{"-1"}, 0, true},
		{"non-numeric rejected", []string{"read"}, 0, true},
		{"one bad value poisons the set", []string{"1", "64"}, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePermissions(tc.values)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParsePermissions(%v) expected error, got %d", tc.values, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePermissions(%v) unexpected error: %v", tc.values, err)
			}
			if got != tc.want {
				t.Errorf("ParsePermissions(%v) = %d, want %d", tc.values, got, tc.want)
			}
		})
	}
}

func TestPermissionString(t *testing.T) {
	for _, p := range AllPermissions() {
		if s := p.String(); s == strconv.Itoa(int(p)) {
			t.Errorf("flag %d has no name", p)
		}
	}
}
