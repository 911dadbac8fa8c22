// Package pipeline streams a unified diff through classification,
// refinement and ordered output.
//
// A Collector is fed one ANSI-free input line at a time. Lines are grouped
// into blocks: contiguous removed/added runs become diff blocks, everything
// else accumulates into plain blocks. Each completed block is enqueued as a
// work item on a single bounded FIFO queue, in input order. Plain blocks are
// enqueued already resolved; diff blocks are handed to a worker pool that
// refines them concurrently, with a one-shot channel standing in for the
// result.
//
// A dedicated output goroutine pops work items strictly in FIFO order and
// blocks per item until its text is ready. Consumption is sequential while
// computation is parallel, so output order always equals input order no
// matter which worker finishes first. The bounded queue doubles as
// backpressure: a producer racing ahead of a slow pager blocks on the
// enqueue.
//
// Invariants:
//   - At most one of the old/new block and the plain block is non-empty at
//     any time; the arrival of either kind flushes the other first.
//   - Work items are enqueued in exactly the order their input arrived.
//   - An accumulated old/new buffer always ends in '\n' except right after a
//     "\" no-newline marker popped it; violations panic, they mean the state
//     machine is broken, not that the input is malformed.
package pipeline
