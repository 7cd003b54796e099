package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sort"
	"time"

	"github.com/chris-regnier/kindctl/internal/day"
	"github.com/chris-regnier/kindctl/internal/prompt"
	"github.com/chris-regnier/kindctl/internal/storage"
	"github.com/chris-regnier/kindctl/internal/ui"
	"github.com/spf13/cobra"
)

// profile defines a user persona for generating seed data.
type profile struct {
	name        string
	description string
	// daysBack is how far back to start generating completions.
	daysBack int
	// chance returns the probability of completing the prompt on d, seeded
	// at now (0.0–1.0).
	chance func(d, now time.Time) float64
	// skipChance is the probability of skipping a prompt before completing.
	skipChance float64
	// favoriteChance is the probability a completion is a favorite.
	favoriteChance float64
	// notes is a pool of notes; an empty string means no notes.
	notes []string
}

var profiles = map[string]profile{
	"steady": {
		name:           "steady",
		description:    "Does something kind nearly every day",
		daysBack:       90,
		chance:         func(_, _ time.Time) float64 { return 0.93 },
		skipChance:     0.1,
		favoriteChance: 0.15,
		notes: []string{
			"",
			"",
			"Felt good all afternoon.",
			"They were surprised, in a nice way.",
			"Took two minutes. Should do this more often.",
			"Ended up chatting for half an hour.",
		},
	},
	"weekender": {
		name:        "weekender",
		description: "Busy on weekdays, makes up for it on weekends",
		daysBack:    120,
		chance: func(d, _ time.Time) float64 {
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				return 0.9
			}
			return 0.3
		},
		skipChance:     0.25,
		favoriteChance: 0.1,
		notes: []string{
			"",
			"Did it with the kids.",
			"Farmers market crowd was lovely.",
			"",
		},
	},
	"comeback": {
		name:        "comeback",
		description: "Fell off for a month, now on a fresh streak",
		daysBack:    75,
		chance: func(d, now time.Time) float64 {
			age := now.Sub(d).Hours() / 24
			switch {
			case age < 12:
				return 1
			case age < 42:
				return 0.05
			default:
				return 0.8
			}
		},
		skipChance:     0.2,
		favoriteChance: 0.2,
		notes: []string{
			"",
			"Back at it.",
			"Small, but it counts.",
		},
	},
}

// seedResult is the JSON form of a seed run.
type seedResult struct {
	Profile     string           `json:"profile"`
	Completions int              `json:"completions"`
	Skips       int              `json:"skips"`
	Favorites   int              `json:"favorites"`
	Progress    storage.Progress `json:"progress"`
}

var seedListProfiles bool

var seedCmd = &cobra.Command{
	Use:   "seed [profile]",
	Short: "Seed the history with realistic sample data",
	Long: `Populate the completion history to simulate an active user, then rebuild
progress from it.

Available profiles:
  steady    – Nearly every day (~90 days)
  weekender – Mostly weekends (~120 days)
  comeback  – A long gap followed by a fresh streak (~75 days)

If no profile is specified, "steady" is used. Days that already have a
completion are left alone.`,
	Example: `  kindctl seed
  kindctl seed weekender
  kindctl seed --list`,
	Args:     cobra.MaximumNArgs(1),
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedListProfiles {
			names := make([]string, 0, len(profiles))
			for name := range profiles {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Fprintln(os.Stdout, "Available profiles:")
			for _, name := range names {
				fmt.Fprintf(os.Stdout, "  %-12s %s\n", name, profiles[name].description)
			}
			return nil
		}

		name := "steady"
		if len(args) > 0 {
			name = args[0]
		}
		p, ok := profiles[name]
		if !ok {
			return fmt.Errorf("unknown profile %q; run 'kindctl seed --list' to see available profiles", name)
		}

		now := time.Now()
		rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), 0))
		return seedRun(cmd.Context(), os.Stdout, p, rng, now)
	},
}

func seedRun(ctx context.Context, w io.Writer, p profile, rng *rand.Rand, now time.Time) error {
	if _, err := svc.Selector.InitializeDatabase(ctx); err != nil {
		return err
	}
	catalog, err := svc.Store.ListPrompts(ctx)
	if err != nil {
		return fmt.Errorf("listing prompts: %w", err)
	}
	if len(catalog) == 0 {
		return fmt.Errorf("prompt catalog is empty")
	}

	res := seedResult{Profile: p.name}
	start := now.AddDate(0, 0, -p.daysBack)
	firstDate := ""

	for d := start; !d.After(now); d = d.AddDate(0, 0, 1) {
		date := day.Key(d)
		if rng.Float64() >= p.chance(d, now) {
			continue
		}
		if _, err := svc.Store.GetCompletionByDate(ctx, date); err == nil {
			continue
		}

		pick := catalog[rng.IntN(len(catalog))]
		if rng.Float64() < p.skipChance {
			if _, err := svc.Store.InsertSkippedPrompt(ctx, storage.SkippedPrompt{
				PromptID:    pick.ID,
				SkippedDate: date,
				Reason:      "not today",
			}); err != nil {
				return fmt.Errorf("seeding skip for %s: %w", date, err)
			}
			res.Skips++
			pick = another(catalog, pick, rng)
		}

		c := storage.Completion{
			PromptID:      pick.ID,
			CompletedDate: date,
			IsFavorite:    rng.Float64() < p.favoriteChance,
			Notes:         p.notes[rng.IntN(len(p.notes))],
		}
		if _, err := svc.Store.InsertCompletion(ctx, c); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping completion for %s: %v\n", date, err)
			continue
		}
		res.Completions++
		if c.IsFavorite {
			res.Favorites++
		}
		if firstDate == "" {
			firstDate = date
		}
	}

	// The first seeded day becomes the tracking start unless history
	// already goes back further.
	stored, err := svc.Tracker.GetUserProgress(ctx)
	if err != nil {
		return err
	}
	if firstDate != "" && (stored.StartDate == "" || firstDate < stored.StartDate) {
		stored.StartDate = firstDate
		if err := svc.Store.PutProgress(ctx, stored); err != nil {
			return fmt.Errorf("saving progress: %w", err)
		}
	}
	if res.Progress, err = svc.Tracker.Recompute(ctx); err != nil {
		return fmt.Errorf("rebuilding progress: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, res)
	}
	fmt.Fprintf(w, "Seeded with profile %q:\n", p.name)
	fmt.Fprintf(w, "  Completions created: %d\n", res.Completions)
	fmt.Fprintf(w, "  Skips created:       %d\n", res.Skips)
	fmt.Fprintf(w, "  Favorites:           %d\n", res.Favorites)
	fmt.Fprintf(w, "  Current streak:      %d\n", res.Progress.CurrentStreak)
	fmt.Fprintf(w, "  Best streak:         %d\n", res.Progress.BestStreak)
	return nil
}

// another returns a catalog prompt other than p when the catalog allows.
func another(catalog []prompt.Prompt, p prompt.Prompt, rng *rand.Rand) prompt.Prompt {
	if len(catalog) < 2 {
		return p
	}
	for {
		if q := catalog[rng.IntN(len(catalog))]; q.ID != p.ID {
			return q
		}
	}
}

func init() {
	seedCmd.Flags().BoolVar(&seedListProfiles, "list", false, "list available profiles")
	rootCmd.AddCommand(seedCmd)
}
