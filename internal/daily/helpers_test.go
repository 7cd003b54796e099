package daily

import (
	"testing"

	"github.com/chris-regnier/kindctl/internal/day"
)

func mustSeed(t *testing.T, date string) int64 {
	t.Helper()
	seed, err := day.Seed(date)
	if err != nil {
		t.Fatal(err)
	}
	return seed
}
