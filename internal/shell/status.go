package shell

import (
	"fmt"
	"io"
	"text/template"
)

// Icons decorate the status line.
type Icons struct {
	Done    string
	Pending string
	Streak  string
}

// Status is the data available to --format templates.
type Status struct {
	TodayIcon     string
	StreakIcon    string
	Done          bool
	Streak        int
	BestStreak    int
	NextMilestone int
	Backend       string
}

// NewStatus resolves icons for a cache record.
func NewStatus(c *PromptCache, icons Icons) Status {
	icon := icons.Pending
	if c.Done {
		icon = icons.Done
	}
	return Status{
		TodayIcon:     icon,
		StreakIcon:    icons.Streak,
		Done:          c.Done,
		Streak:        c.Streak,
		BestStreak:    c.BestStreak,
		NextMilestone: c.NextMilestone,
		Backend:       c.Backend,
	}
}

// WriteDefault writes the compact status line, e.g. "💛 5🔥".
func WriteDefault(w io.Writer, s Status) error {
	_, err := fmt.Fprintf(w, "%s %d%s\n", s.TodayIcon, s.Streak, s.StreakIcon)
	return err
}

// WriteEnv writes shell export statements for the prompt hook.
func WriteEnv(w io.Writer, s Status) error {
	done := "0"
	if s.Done {
		done = "1"
	}
	_, err := fmt.Fprintf(w,
		"export KINDCTL_TODAY=%q\nexport KINDCTL_DONE=%q\nexport KINDCTL_STREAK=%q\nexport KINDCTL_STREAK_ICON=%q\n",
		s.TodayIcon, done, fmt.Sprint(s.Streak), s.StreakIcon)
	return err
}

// WriteTemplate renders s through a Go text/template.
func WriteTemplate(w io.Writer, s Status, format string) error {
	tmpl, err := template.New("status").Parse(format)
	if err != nil {
		return fmt.Errorf("invalid format template: %w", err)
	}
	if err := tmpl.Execute(w, s); err != nil {
		return fmt.Errorf("executing format template: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
