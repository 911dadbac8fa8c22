package pipeline

// textFuture is a work item's result: either text that is already resolved,
// or a one-shot channel a worker will deliver on. Resolved eagerly for plain
// blocks, dispatched eagerly but awaited lazily for diff blocks.
//
// Single consumer: only the output goroutine calls get.
type textFuture struct {
	text string
	ch   chan string // nil once resolved
}

func resolvedFuture(text string) *textFuture {
	return &textFuture{text: text}
}

func pendingFuture() *textFuture {
	return &textFuture{ch: make(chan string, 1)}
}

// get returns the future's text, blocking until a worker delivers it if it is
// still pending.
func (f *textFuture) get() string {
	if f.ch != nil {
		f.text = <-f.ch
		f.ch = nil
	}
	return f.text
}
