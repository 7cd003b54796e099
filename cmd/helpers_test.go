package cmd

import (
	"testing"

	"github.com/chris-regnier/kindctl/internal/config"
	"github.com/chris-regnier/kindctl/internal/kindness"
	"github.com/chris-regnier/kindctl/internal/storage/diskv"
)

const testToday = "2024-03-15"

// setupTestEnv points the package globals at a fresh diskv store whose
// today is testToday.
func setupTestEnv(t *testing.T) *kindness.Service {
	t.Helper()
	dir := t.TempDir()
	s, err := diskv.New(dir)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	store = s
	svc = kindness.New(s, kindness.Options{Today: func() string { return testToday }})
	appConfig = &config.Config{
		Storage:       "diskv",
		DataDir:       dir,
		RetentionDays: 7,
		Shell: config.ShellConfig{
			CacheTTL:    "5m",
			DoneIcon:    "D",
			PendingIcon: "P",
			StreakIcon:  "S",
		},
	}
	jsonOutput = false
	statusEnv, statusRefresh, statusFormat = false, false, ""
	return svc
}
