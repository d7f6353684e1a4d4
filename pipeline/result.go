package pipeline

// Result is the outcome of a transform which may still be running.
type Result struct {
	done chan struct{}
	css  string
	err  error
}

func newResult() *Result {
	return &Result{done: make(chan struct{})}
}

func (r *Result) resolve(css string, err error) {
	r.css, r.err = css, err
	close(r.done)
}

// Done returns channel closed when the result is available.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until transform completes and returns its outcome.
func (r *Result) Wait() (string, error) {
	<-r.done
	return r.css, r.err
}
