package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/caresupport/internal/client/content"
)

// Tips lists the recommendation guides, or prints the one named in args.
func (a *App) Tips(_ context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, content.Intro)
		for _, g := range content.Guides() {
			fmt.Fprintf(a.out, "  %-10s %s: %s\n", g.ID, g.Title, g.Summary)
		}
		fmt.Fprintln(a.out, "Type 'tips <guide>' to read one.")
		return nil
	}

	g, ok := content.FindGuide(args[0])
	if !ok {
		fmt.Fprintf(a.out, "No guide %q.\n", args[0])
		return fmt.Errorf("unknown guide %q", args[0])
	}
	fmt.Fprintln(a.out, g.Title)
	fmt.Fprintln(a.out, g.Intro)
	for _, sec := range g.Sections {
		fmt.Fprintf(a.out, "\n%s\n", sec.Heading)
		for _, tip := range sec.Tips {
			if tip.Title != "" {
				fmt.Fprintf(a.out, "  • %s: %s\n", tip.Title, tip.Text)
			} else {
				fmt.Fprintf(a.out, "  • %s\n", tip.Text)
			}
		}
	}
	return nil
}

func (a *App) Symptoms(_ context.Context) error {
	for i, s := range content.CommonSymptoms {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, s)
	}
	fmt.Fprintln(a.out, "Use 'diary 1 3' to start an entry with symptoms 1 and 3.")
	return nil
}

// Measure records a measurement as a diary entry. Without arguments it asks
// for the kind and value.
func (a *App) Measure(ctx context.Context, args []string) error {
	st := a.currentStore(ctx)
	if st == nil {
		return nil
	}

	var kind, value string
	if len(args) >= 2 {
		kind, value = args[0], strings.Join(args[1:], " ")
	} else {
		kinds := make([]string, 0, len(content.Measurements))
		for _, m := range content.Measurements {
			kinds = append(kinds, m.Kind)
		}
		var err error
		if kind, err = getSimpleText(a.reader, "Measurement ("+strings.Join(kinds, ", ")+")", a.out); err != nil {
			return err
		}
		if value, err = getSimpleText(a.reader, "Value", a.out); err != nil {
			return err
		}
	}

	text, err := content.MeasurementText(kind, value)
	if err != nil {
		fmt.Fprintln(a.out, "Measurement not saved:", err)
		return err
	}
	if _, err := st.AppendDiaryEntry(ctx, text); err != nil {
		fmt.Fprintln(a.out, "Measurement not saved:", err)
		return err
	}
	fmt.Fprintln(a.out, "Saved:", text)
	return nil
}
