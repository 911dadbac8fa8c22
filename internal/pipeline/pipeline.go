package pipeline

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/skagerrak/riffle/internal/refine"
	"github.com/skagerrak/riffle/internal/simplelogger"
)

// Options configure a Collector. The zero value picks defaults.
type Options struct {
	// PoolSize is the number of concurrent refiner workers.
	// Defaults to runtime.NumCPU().
	PoolSize int

	// QueueDepth is the capacity of the ordered output queue, i.e. how many
	// blocks the producer may run ahead of the output. Large enough to keep
	// the worker pool saturated, small enough to bound memory.
	// Defaults to PoolSize * 100.
	QueueDepth int
}

// Collector is the streaming diff pipeline. Feed it input lines with
// ConsumeLine and finish with Close; formatted output appears on the writer
// it was created with, in input order.
//
// ConsumeLine and Close must be called from a single goroutine.
type Collector struct {
	oldText  bytes.Buffer
	newText  bytes.Buffer
	plain    bytes.Buffer
	diffSeen bool

	markers *refine.MarkerStore

	queue   chan *textFuture
	workers *errgroup.Group

	out         *bufio.Writer
	printerDone chan struct{}

	// refineBlock produces the rendered text for one old/new block. A hook
	// so tests can stub out or delay the real refiner.
	refineBlock func(oldText, newText string) string
}

// NewCollector returns a running Collector writing to out. opts may be nil.
func NewCollector(out io.Writer, opts *Options) *Collector {
	poolSize := 0
	queueDepth := 0
	if opts != nil {
		poolSize = opts.PoolSize
		queueDepth = opts.QueueDepth
	}
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}
	if queueDepth <= 0 {
		queueDepth = poolSize * 100
	}

	workers := &errgroup.Group{}
	workers.SetLimit(poolSize)

	markers := refine.NewMarkerStore()

	c := &Collector{
		markers:     markers,
		queue:       make(chan *textFuture, queueDepth),
		workers:     workers,
		out:         bufio.NewWriter(out),
		printerDone: make(chan struct{}),
		refineBlock: func(oldText, newText string) string {
			return refine.Format(oldText, newText, markers)
		},
	}

	go c.printLoop()
	return c
}

// printLoop pops futures in FIFO order and writes their text. Popping is
// strictly sequential, which is what guarantees output ordering.
func (c *Collector) printLoop() {
	defer close(c.printerDone)

	for future := range c.queue {
		text := future.get()
		if text == "" {
			// The empty sentinel: drain is over.
			break
		}
		c.print(text)
	}

	if err := c.out.Flush(); err != nil {
		exitIfBrokenPipe(err)
	}
}

func (c *Collector) print(text string) {
	if _, err := c.out.WriteString(text); err != nil {
		exitIfBrokenPipe(err)
		panic("pipeline: writing to output: " + err.Error())
	}
}

// exitIfBrokenPipe turns a broken-pipe write failure into a clean exit:
// somebody quit their pager before it finished reading our output, which is
// normal shutdown, not an error.
func exitIfBrokenPipe(err error) {
	if errors.Is(err, syscall.EPIPE) {
		os.Exit(0)
	}
}

// Close flushes any outstanding block, waits for all pending work to be
// printed and stops the pipeline. The Collector must not be used afterwards.
func (c *Collector) Close() {
	// At most one of these is non-empty; flushing both in either order is
	// fine.
	c.flushOldNew()
	c.flushPlain()

	// An empty resolved future is the stop sentinel.
	c.queue <- resolvedFuture("")
	<-c.printerDone
	close(c.queue)

	// The printer consumed every future, so no worker is blocked on a send;
	// this returns promptly.
	_ = c.workers.Wait()
}

// flushOldNew packages the accumulated removed/added block as a diff work
// item and hands it to the worker pool.
func (c *Collector) flushOldNew() {
	if c.oldText.Len() == 0 && c.newText.Len() == 0 {
		return
	}

	oldText := c.oldText.String()
	newText := c.newText.String()
	c.oldText.Reset()
	c.newText.Reset()

	future := pendingFuture()
	// Enqueue before dispatching: the queue position is what fixes this
	// block's place in the output order.
	c.queue <- future
	c.workers.Go(func() error {
		future.ch <- c.refineBlock(oldText, newText)
		return nil
	})

	simplelogger.Log("pipeline: dispatched diff block, old=%dB new=%dB", len(oldText), len(newText))
}

// flushPlain packages the accumulated pass-through block as an
// already-resolved work item.
func (c *Collector) flushPlain() {
	if c.plain.Len() == 0 {
		return
	}

	c.queue <- resolvedFuture(c.plain.String())
	c.plain.Reset()
}
