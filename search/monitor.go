package search

import "github.com/convodex/convodex/index"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps during a query.
type SearchMonitor interface {
	Start(query string)
	AfterIndexQuery(answer *index.Answer)
	AfterParse(candidates []index.AnswerResult)
	Hit(result *Result)
	Finish(results []*Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                        {}
func (n *noopMonitor) AfterIndexQuery(_ *index.Answer)       {}
func (n *noopMonitor) AfterParse(_ []index.AnswerResult)     {}
func (n *noopMonitor) Hit(_ *Result)                         {}
func (n *noopMonitor) Finish(_ []*Result)                    {}
