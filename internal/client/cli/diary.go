package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/caresupport/internal/client/content"
	"github.com/dmitrijs2005/caresupport/internal/client/diary"
)

const timeLayout = "2006-01-02 15:04"

// CheckIn records today's mood, energy and an optional note.
func (a *App) CheckIn(ctx context.Context) error {
	st := a.currentStore(ctx)
	if st == nil {
		return nil
	}

	moodText, err := getSimpleText(a.reader, "Mood (happy, ok, tired, sad)", a.out)
	if err != nil {
		return err
	}
	mood, err := diary.ParseMood(moodText)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	energyText, err := getSimpleText(a.reader, "Energy level from 1 (low) to 5 (high)", a.out)
	if err != nil {
		return err
	}
	energy, err := strconv.Atoi(energyText)
	if err != nil {
		fmt.Fprintln(a.out, "Energy must be a number from 1 to 5.")
		return err
	}

	note, err := getSimpleText(a.reader, "Short note (optional)", a.out)
	if err != nil {
		return err
	}

	if _, err := st.AppendCheckIn(ctx, mood, energy, note); err != nil {
		fmt.Fprintln(a.out, "Check-in not saved:", err)
		return err
	}
	fmt.Fprintln(a.out, "Your check-in for today has been saved.")
	return nil
}

// Recent lists the latest check-ins; an optional argument overrides the
// configured count.
func (a *App) Recent(ctx context.Context, args []string) error {
	st := a.currentStore(ctx)
	if st == nil {
		return nil
	}
	limit := a.config.RecentCheckIns
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintln(a.out, "Usage: recent [n]")
			return err
		}
		limit = n
	}

	list := st.RecentCheckIns(limit)
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No check-ins yet.")
		return nil
	}
	for _, c := range list {
		line := fmt.Sprintf("%s  %-5s  Energy %d/5", c.CreatedAt.Local().Format(timeLayout), c.Mood.Label(), c.Energy)
		if c.Note != "" {
			line += "  " + c.Note
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// AddDiaryEntry adds a symptom diary entry. Arguments are numbers from the
// symptoms list and are added to the text first.
func (a *App) AddDiaryEntry(ctx context.Context, args []string) error {
	st := a.currentStore(ctx)
	if st == nil {
		return nil
	}

	draft := ""
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(content.CommonSymptoms) {
			fmt.Fprintf(a.out, "Unknown symptom %q, see 'symptoms'.\n", arg)
			return fmt.Errorf("unknown symptom %q", arg)
		}
		draft = content.AppendSymptom(draft, content.CommonSymptoms[n-1])
	}
	if draft != "" {
		fmt.Fprintln(a.out, "Entry so far:", draft)
	}

	more, err := GetMultiline(a.reader, "Describe how you feel", a.out)
	if err != nil {
		return err
	}
	if more != "" {
		draft = content.AppendSymptom(draft, more)
	}

	if _, err := st.AppendDiaryEntry(ctx, draft); err != nil {
		if errors.Is(err, diary.ErrInvalidInput) {
			fmt.Fprintln(a.out, "Nothing to save: the entry is empty.")
		} else {
			fmt.Fprintln(a.out, "Entry not saved:", err)
		}
		return err
	}
	fmt.Fprintln(a.out, "Entry saved.")
	return nil
}

func (a *App) Entries(ctx context.Context) error {
	st := a.currentStore(ctx)
	if st == nil {
		return nil
	}
	list := st.AllDiaryEntries()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "The diary is empty.")
		return nil
	}
	for _, e := range list {
		fmt.Fprintf(a.out, "%s\n  %s\n", e.CreatedAt.Local().Format(timeLayout),
			strings.ReplaceAll(e.Text, "\n", "\n  "))
	}
	return nil
}

func (a *App) Tasks(ctx context.Context) error {
	st := a.currentStore(ctx)
	if st == nil {
		return nil
	}
	for i, t := range st.Tasks() {
		mark := " "
		if t.Done {
			mark = "x"
		}
		fmt.Fprintf(a.out, "%d. [%s] %s: %s\n", i+1, mark, t.Title, t.Detail)
	}
	return nil
}

// Toggle flips a checklist task given by its number or id.
func (a *App) Toggle(ctx context.Context, args []string) error {
	st := a.currentStore(ctx)
	if st == nil {
		return nil
	}
	id := args[0]
	tasks := st.Tasks()
	if n, err := strconv.Atoi(id); err == nil && n >= 1 && n <= len(tasks) {
		id = tasks[n-1].ID
	}
	if err := st.ToggleTask(ctx, id); err != nil {
		fmt.Fprintln(a.out, "Could not update the task:", err)
		return err
	}
	return a.Tasks(ctx)
}
