package linksearch

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// InternalScheme prefixes links to content entries of the host.
const InternalScheme = "internal://"

var (
	ErrNoInternalTarget  = errors.New("select an internal content item to link to")
	ErrEmptyURL          = errors.New("enter a valid URL or URI")
	ErrUnsupportedScheme = errors.New("invalid URL or URI: it must start with https:// or another supported protocol")
)

var externalLink = regexp.MustCompile(`(?i)^(https?|ftp|mailto|tel|ws|wss|sms|geo|maps|whatsapp|facetime|facetime-audio|skype|sip|sips):\/\/?`)

// IsInternal reports whether link points at a content entry.
func IsInternal(link string) bool { return strings.HasPrefix(link, InternalScheme) }

// ValidateExternal checks that link is a non-empty URL with a supported
// scheme.
func ValidateExternal(link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return ErrEmptyURL
	}
	if !externalLink.MatchString(link) {
		return ErrUnsupportedScheme
	}
	return nil
}

// Tab is the page of the link dialog.
type Tab string

const (
	TabInternal Tab = "internal"
	TabExternal Tab = "external"
)

// Dialog is the state of the link dialog for one field.
type Dialog struct {
	searcher Searcher
	scope    Query
	current  string

	// Tab is the page shown when the dialog opens.
	Tab Tab

	// Query is the last search text.
	Query string

	// Results are the entries offered for an internal link.
	Results []Result
}

// NewDialog opens the dialog for the link currently under the cursor. scope
// carries the model, field and locale searches are restricted to. When
// current is an internal link its target is loaded so it shows as selected.
func NewDialog(ctx context.Context, searcher Searcher, scope Query, current string) *Dialog {
	d := &Dialog{searcher: searcher, scope: scope, current: current, Results: []Result{}}

	d.Tab = TabInternal
	if !IsInternal(current) && current != "" {
		d.Tab = TabExternal
	}

	if IsInternal(current) {
		if r, err := searcher.Get(ctx, strings.TrimPrefix(current, InternalScheme)); err == nil && r != nil {
			d.Results = []Result{*r}
		}
	}
	return d
}

// Current returns the link the dialog was opened with.
func (d *Dialog) Current() string { return d.current }

// Search replaces the offered results. Blank input clears them.
func (d *Dialog) Search(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		d.Results = []Result{}
		return
	}
	d.Query = text
	q := d.scope
	q.Q = text
	results, err := d.searcher.Search(ctx, q)
	if err != nil || results == nil {
		results = []Result{}
	}
	d.Results = results
}

// Submit validates value for tab and returns the link to apply.
func (d *Dialog) Submit(tab Tab, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch tab {
	case TabInternal:
		if value == "" {
			return "", ErrNoInternalTarget
		}
		return value, nil
	case TabExternal:
		if err := ValidateExternal(value); err != nil {
			return "", err
		}
		return value, nil
	}
	return "", ErrNoInternalTarget
}
