package controllers

import (
	"strings"
	"testing"
)

func TestCatalogOrder(t *testing.T) {
	cases := []struct {
		sort string
		want string
	}{
		{"price_low", "price ASC"},
		{"price_high", "price DESC"},
		{"duration", "duration ASC"},
		{"newest", "id DESC"},
		{"", "id DESC"},
		{"garbage", "id DESC"},
	}
	for _, c := range cases {
		if got := catalogOrder(c.sort); got != c.want {
			t.Fatalf("catalogOrder(%q) = %q, want %q", c.sort, got, c.want)
		}
	}

	// Rating sorts by the per-service review average, nulls last so unrated
	// services do not float to the top.
	got := catalogOrder("rating")
	if got == "id DESC" {
		t.Fatalf("rating must not fall back to the default order")
	}
	for _, needle := range []string{"AVG(rating)", "service_reviews", "NULLS LAST"} {
		if !strings.Contains(got, needle) {
			t.Fatalf("rating order %q missing %q", got, needle)
		}
	}
}
