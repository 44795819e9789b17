package picker

import (
	"context"
	"errors"
	"strings"

	"github.com/raphi011/gpick/internal/log"
)

// Mode selects single or multi selection.
type Mode int

const (
	Single Mode = iota
	Multi
)

// Action is how the user left the selector.
type Action int

const (
	// Accept: enter, or the Abort sentinel (then with no chosen items).
	Accept Action = iota
	// DeleteKey: the request's delete key was pressed.
	DeleteKey
	// AlternateKey: the request's alternate key was pressed.
	AlternateKey
	// Cancelled: the user left without choosing (esc, ctrl-c, no match).
	Cancelled
)

func (a Action) String() string {
	switch a {
	case Accept:
		return "accept"
	case DeleteKey:
		return "delete"
	case AlternateKey:
		return "alternate"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

const (
	// AbortLabel is the sentinel row below the separator.
	AbortLabel = "Abort"
	// separatorLabel sits between the rows and the sentinel.
	separatorLabel = "────────"
)

// Item is one selectable row.
type Item struct {
	Key     string // stable identifier, also passed to the preview
	Display string
	// Match is the text the query shortcut matches against. Empty means
	// Display.
	Match       string
	Preselected bool
}

// View is a named set of items. The toggle key cycles through views.
type View struct {
	Name  string
	Items []Item
}

// Request describes one interactive selection.
type Request struct {
	Views []View
	Mode  Mode
	Query string // initial filter; drives the one-match shortcut
	// Header is shown above the list.
	Header string
	// Preview is the kind passed to "gpick preview <kind> <key>" by the fzf
	// backend. Empty disables the preview pane.
	Preview string
	// PreviewFunc renders the preview in-process for the builtin backend.
	PreviewFunc func(key string) string

	DeleteKey    string // e.g. "ctrl-d"
	AlternateKey string // e.g. "ctrl-u"
	ToggleKey    string // e.g. "ctrl-t"; only used with more than one view
}

// Result is the outcome of Present.
type Result struct {
	Action Action
	Chosen []Item
	View   string // name of the view the user was in
	Query  string
	// Interrupted is set when a Cancelled result came from esc or ctrl-c
	// rather than from a query without matches.
	Interrupted bool
}

// Presenter runs selections against a Selector backend.
type Presenter struct {
	Selector Selector
}

// ErrNoViews is returned for a request without views.
var ErrNoViews = errors.New("picker: request has no views")

// Present shows the request and returns the user's choice.
func (p *Presenter) Present(ctx context.Context, req Request) (Result, error) {
	if len(req.Views) == 0 {
		return Result{}, ErrNoViews
	}
	l := log.FromContext(ctx)

	view := 0
	query := req.Query

	if query != "" {
		if matches := Matching(req.Views[view].Items, query); len(matches) == 1 {
			l.Debug("single match, skipping selector", "query", query, "key", matches[0].Key)
			return Result{Action: Accept, Chosen: matches, View: req.Views[view].Name, Query: query}, nil
		}
	}

	for {
		menu := buildMenu(req, view, query)
		sel, err := p.Selector.Select(ctx, menu)
		if err != nil {
			return Result{}, err
		}
		l.Debug("selector returned", "view", req.Views[view].Name, "key", sel.Key, "count", len(sel.Indices), "cancelled", sel.Cancelled)

		res := Result{View: req.Views[view].Name, Query: sel.Query}
		switch {
		case sel.Cancelled:
			res.Action = Cancelled
			res.Interrupted = sel.Interrupted
			return res, nil
		case sel.Key != "" && sel.Key == req.ToggleKey && len(req.Views) > 1:
			// Query survives the toggle; the selection is rebuilt from the
			// next view's preselection.
			view = (view + 1) % len(req.Views)
			query = sel.Query
			continue
		case sel.Key != "" && sel.Key == req.DeleteKey:
			res.Action = DeleteKey
		case sel.Key != "" && sel.Key == req.AlternateKey:
			res.Action = AlternateKey
		default:
			res.Action = Accept
		}

		items := req.Views[view].Items
		for _, i := range sel.Indices {
			if i < 0 || i >= len(items) {
				// separator or sentinel: abort wins over any other choice
				res.Chosen = nil
				return res, nil
			}
			res.Chosen = append(res.Chosen, items[i])
		}
		return res, nil
	}
}

// buildMenu renders a view plus separator and sentinel for the backend.
func buildMenu(req Request, view int, query string) Menu {
	items := req.Views[view].Items
	entries := make([]Entry, 0, len(items)+2)
	for _, it := range items {
		entries = append(entries, Entry{
			Key:         it.Key,
			Display:     it.Display,
			Preselected: req.Mode == Multi && it.Preselected,
		})
	}
	entries = append(entries,
		Entry{Display: separatorLabel, Disabled: true},
		Entry{Display: AbortLabel},
	)

	var keys []string
	for _, k := range []string{req.DeleteKey, req.AlternateKey} {
		if k != "" {
			keys = append(keys, k)
		}
	}
	if req.ToggleKey != "" && len(req.Views) > 1 {
		keys = append(keys, req.ToggleKey)
	}

	header := req.Header
	if len(req.Views) > 1 && req.Views[view].Name != "" {
		header = strings.TrimSpace(header + " [" + req.Views[view].Name + "]")
	}

	return Menu{
		Entries:     entries,
		Multi:       req.Mode == Multi,
		Query:       query,
		Header:      header,
		Preview:     req.Preview,
		PreviewFunc: req.PreviewFunc,
		Keys:        keys,
	}
}

// Matching returns the items whose match text contains every whitespace
// separated term of query, ignoring case.
func Matching(items []Item, query string) []Item {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil
	}
	var out []Item
	for _, it := range items {
		text := it.Match
		if text == "" {
			text = it.Display
		}
		text = strings.ToLower(text)
		ok := true
		for _, t := range terms {
			if !strings.Contains(text, t) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, it)
		}
	}
	return out
}
