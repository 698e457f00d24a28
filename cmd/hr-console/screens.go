package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/hrsystem/hr-console/internal/bootstrap"
	"github.com/hrsystem/hr-console/internal/console"
	"github.com/hrsystem/hr-console/internal/domain/resource"
)

// screenHandle erases the record type so the command loop can drive any
// screen through one interface. All semantics live in console.Screen; this
// adapter only translates records to and from the terminal.
type screenHandle interface {
	Title() string
	Refresh(ctx context.Context)
	SetSearch(term string)
	RenderList(w io.Writer) error
	OpenCreate() error
	OpenEdit(id int64) error
	CloseModal()
	ApplyDraft(fields map[string]string) error
	Submit(ctx context.Context) error
	RequestDelete(id int64) error
	PendingDelete() int64
	CancelDelete()
	ConfirmDelete(ctx context.Context) error
	FieldErrors() map[string][]string
	Banner() *console.BannerSlot
	Reset()
}

type screenAdapter[T any] struct {
	screen *console.Screen[T]
}

func newHandles(s bootstrap.Screens) map[string]screenHandle {
	return map[string]screenHandle{
		"competencies":    &screenAdapter[resource.Competency]{screen: s.Competencies},
		"languages":       &screenAdapter[resource.Language]{screen: s.Languages},
		"training":        &screenAdapter[resource.Training]{screen: s.Trainings},
		"positions":       &screenAdapter[resource.Position]{screen: s.Positions},
		"candidates":      &screenAdapter[resource.Candidate]{screen: s.Candidates},
		"employees":       &screenAdapter[resource.Employee]{screen: s.Employees},
		"work-experience": &screenAdapter[resource.WorkExperience]{screen: s.WorkExperience},
	}
}

func (a *screenAdapter[T]) Title() string                  { return a.screen.Schema().Title }
func (a *screenAdapter[T]) Refresh(ctx context.Context)    { a.screen.Refresh(ctx) }
func (a *screenAdapter[T]) SetSearch(term string)          { a.screen.SetSearch(term) }
func (a *screenAdapter[T]) OpenCreate() error              { return a.screen.OpenCreate() }
func (a *screenAdapter[T]) OpenEdit(id int64) error        { return a.screen.OpenEdit(id) }
func (a *screenAdapter[T]) CloseModal()                    { a.screen.CloseModal() }
func (a *screenAdapter[T]) Submit(ctx context.Context) error { return a.screen.Submit(ctx) }
func (a *screenAdapter[T]) RequestDelete(id int64) error   { return a.screen.RequestDelete(id) }
func (a *screenAdapter[T]) PendingDelete() int64           { return a.screen.PendingDelete() }
func (a *screenAdapter[T]) CancelDelete()                  { a.screen.CancelDelete() }
func (a *screenAdapter[T]) ConfirmDelete(ctx context.Context) error {
	return a.screen.ConfirmDelete(ctx)
}
func (a *screenAdapter[T]) FieldErrors() map[string][]string { return a.screen.FieldErrors() }
func (a *screenAdapter[T]) Banner() *console.BannerSlot      { return a.screen.Banner() }
func (a *screenAdapter[T]) Reset()                           { a.screen.Reset() }

// RenderList prints the visible records as an id column plus the record's
// wire fields.
func (a *screenAdapter[T]) RenderList(w io.Writer) error {
	records := a.screen.Visible()
	if len(records) == 0 {
		return writef(w, "no %s records\n", a.screen.Schema().Title)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, rec := range records {
		fields, err := recordFields(rec)
		if err != nil {
			return err
		}
		if err := writef(tw, "%d\t%s\n", a.screen.Schema().ID(rec), fields); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// ApplyDraft overlays field=value pairs (wire field names) onto the pending
// form draft, going through JSON so numeric fields accept numeric input.
func (a *screenAdapter[T]) ApplyDraft(fields map[string]string) error {
	draft, err := a.screen.Draft()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("decode draft: %w", err)
	}

	for k, v := range fields {
		m[k] = v
		// Numeric input goes in as a number when the draft field takes one;
		// otherwise it stays a string (salaries travel as strings).
		if n, numErr := strconv.ParseFloat(v, 64); numErr == nil {
			trial := map[string]any{k: n}
			if raw, trialErr := json.Marshal(trial); trialErr == nil {
				var probe T
				if json.Unmarshal(raw, &probe) == nil {
					m[k] = n
				}
			}
		}
	}

	merged, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode merged draft: %w", err)
	}
	var next T
	if err := json.Unmarshal(merged, &next); err != nil {
		return fmt.Errorf("field does not fit the %s draft: %w", a.screen.Schema().Title, err)
	}
	return a.screen.SetDraft(next)
}

func recordFields(rec any) (string, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", fmt.Errorf("decode record: %w", err)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for _, k := range keys {
		if out != "" {
			out += "\t"
		}
		out += fmt.Sprintf("%s=%v", k, m[k])
	}
	return out, nil
}
