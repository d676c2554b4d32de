package plugin

import (
	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/wordcount"
)

// NewWordCount returns an extension reporting the counts of the document
// text once at install and after every content change.
func NewWordCount(counter *wordcount.Counter, report func(wordcount.Counts)) *Factory {
	return New("word-count", func(s sdk.Surface, _ Env) []*sdk.Subscription {
		measure := func(st *document.State) {
			report(counter.Count(st.Root().TextContent()))
		}
		s.Read(measure)
		return []*sdk.Subscription{
			s.RegisterUpdateListener(func(e sdk.UpdateEvent) {
				if e.Dirty {
					measure(e.State)
				}
			}),
		}
	})
}
