package linksearch_test

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/richfield/internal/linksearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) Search(ctx context.Context, q linksearch.Query) ([]linksearch.Result, error) {
	args := m.Called(ctx, q)
	results, _ := args.Get(0).([]linksearch.Result)
	return results, args.Error(1)
}

func (m *mockSearcher) Get(ctx context.Context, id string) (*linksearch.Result, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(*linksearch.Result)
	return result, args.Error(1)
}

func TestNewDialog_PrepopulatesInternalTarget(t *testing.T) {
	searcher := new(mockSearcher)
	current := &linksearch.Result{DocumentID: "abc", Label: "Hello", CollectionName: "articles"}
	searcher.On("Get", mock.Anything, "articles/abc").Return(current, nil)

	d := linksearch.NewDialog(context.Background(), searcher, articleScope, "internal://articles/abc")

	assert.Equal(t, linksearch.TabInternal, d.Tab)
	require.Len(t, d.Results, 1)
	assert.Equal(t, "abc", d.Results[0].DocumentID)
	searcher.AssertExpectations(t)
}

func TestNewDialog_Tabs(t *testing.T) {
	tests := []struct {
		name    string
		current string
		want    linksearch.Tab
	}{
		{name: "no link", current: "", want: linksearch.TabInternal},
		{name: "external link", current: "https://example.com", want: linksearch.TabExternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := linksearch.NewDialog(context.Background(), new(mockSearcher), articleScope, tt.current)
			assert.Equal(t, tt.want, d.Tab)
			assert.Empty(t, d.Results)
		})
	}
}

func TestDialog_Search(t *testing.T) {
	searcher := new(mockSearcher)
	want := linksearch.Query{Model: articleScope.Model, Field: articleScope.Field, Locale: "en", Q: "news"}
	searcher.On("Search", mock.Anything, want).Return([]linksearch.Result{{DocumentID: "n1"}}, nil)

	d := linksearch.NewDialog(context.Background(), searcher, articleScope, "")
	d.Search(context.Background(), "  news ")
	assert.Len(t, d.Results, 1)

	d.Search(context.Background(), "   ")
	assert.Empty(t, d.Results)
	searcher.AssertNumberOfCalls(t, "Search", 1)
}

func TestDialog_Submit(t *testing.T) {
	d := linksearch.NewDialog(context.Background(), new(mockSearcher), articleScope, "")

	tests := []struct {
		name    string
		tab     linksearch.Tab
		value   string
		want    string
		wantErr error
	}{
		{name: "internal", tab: linksearch.TabInternal, value: "internal://articles/abc", want: "internal://articles/abc"},
		{name: "internal empty", tab: linksearch.TabInternal, wantErr: linksearch.ErrNoInternalTarget},
		{name: "external", tab: linksearch.TabExternal, value: "https://example.com", want: "https://example.com"},
		{name: "mailto", tab: linksearch.TabExternal, value: "mailto://me@example.com", want: "mailto://me@example.com"},
		{name: "external empty", tab: linksearch.TabExternal, value: "  ", wantErr: linksearch.ErrEmptyURL},
		{name: "no scheme", tab: linksearch.TabExternal, value: "example.com", wantErr: linksearch.ErrUnsupportedScheme},
		{name: "javascript", tab: linksearch.TabExternal, value: "javascript://alert(1)", wantErr: linksearch.ErrUnsupportedScheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Submit(tt.tab, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://", "https://"},
		{"https://example.com/a?b=c", "https://example.com/a?b=c"},
		{"mailto:me@example.com", "mailto:me@example.com"},
		{"internal://articles/abc", "internal://articles/abc"},
		{"javascript:alert(1)", "about:blank"},
		{"relative/path", "relative/path"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, linksearch.SanitizeURL(tt.in))
		})
	}
}

func TestHighlight(t *testing.T) {
	got := linksearch.Highlight("Über news and NEWS", "news")

	assert.Equal(t, []linksearch.Segment{
		{Text: "Über "},
		{Text: "news", Match: true},
		{Text: " and "},
		{Text: "NEWS", Match: true},
	}, got)

	assert.Equal(t, []linksearch.Segment{{Text: "plain"}}, linksearch.Highlight("plain", " "))
	assert.Equal(t, []linksearch.Segment{{Text: "a.b"}}, linksearch.Highlight("a.b", "x.y"))
}
