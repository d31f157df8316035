package frontier

// Frontier holds the queue of pending URLs and the set of every URL that
// has ever been enqueued during the current run. A URL enters the set at
// enqueue time, so the set also acts as the visited set: once offered, a
// URL can never be offered again, which guarantees Pop returns each URL
// at most once.
//
// Design decision: The frontier is deliberately unsynchronized. The
// breadth-first loop is the only execution context that touches it
// (offers and pops happen in strict sequence on that context), so a
// mutex would guard nothing.
type Frontier struct {
	// queue holds pending URLs in first-discovered-first-fetched order.
	queue []string

	// seen contains every URL ever offered, including already-popped ones.
	seen map[string]struct{}
}

// New creates an empty Frontier.
func New() *Frontier {
	return &Frontier{seen: make(map[string]struct{})}
}

// Reset clears the queue and the seen set. It is called once at the start
// of each run, before seeding.
func (f *Frontier) Reset() {
	f.queue = f.queue[:0]
	f.seen = make(map[string]struct{})
}

// Offer enqueues url unless it has been offered before in this run.
// It reports whether the URL was actually enqueued. Identity is the exact
// byte form of the absolute URL; no normalization is applied.
func (f *Frontier) Offer(url string) bool {
	if _, ok := f.seen[url]; ok {
		return false
	}
	f.seen[url] = struct{}{}
	f.queue = append(f.queue, url)
	return true
}

// Pop removes and returns the head of the queue. The second return value
// is false when no pending URLs remain.
func (f *Frontier) Pop() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Pending returns the number of URLs waiting to be fetched.
func (f *Frontier) Pending() int {
	return len(f.queue)
}

// Seen returns the number of unique URLs encountered so far, including
// ones already popped.
func (f *Frontier) Seen() int {
	return len(f.seen)
}
