package concurrency

// GoLimit bounds the number of running goroutines
type GoLimit struct {
	ch chan struct{}
}

// NewGoLimit new go limit
func NewGoLimit(max int) *GoLimit {
	return &GoLimit{
		ch: make(chan struct{}, max),
	}
}

// Add blocks until a slot is free
func (g *GoLimit) Add() {
	g.ch <- struct{}{}
}

// Done frees a slot
func (g *GoLimit) Done() {
	<-g.ch
}
