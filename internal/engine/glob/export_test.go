package glob

// WorkerCount reports the live worker count, for tests.
func (p *Pool) WorkerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.workers
}

// MatchSegments exposes segment matching, for tests.
func MatchSegments(pat, segs []string) bool {
	return matchSegments(pat, segs)
}

// ParsePattern exposes pattern validation, for tests.
func ParsePattern(raw string) error {
	_, err := parsePattern(raw)
	return err
}
