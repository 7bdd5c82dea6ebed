package tossup

import "context"

// asyncCtl is used to control an operation's cancellation in an asynchronous manner.
type asyncCtl struct {
	ctx    context.Context
	cancel context.CancelFunc
	waitCh chan struct{}
}

func newAsyncCtl(parent context.Context) *asyncCtl {
	ctx, cancel := context.WithCancel(parent)
	return &asyncCtl{ctx: ctx, cancel: cancel, waitCh: make(chan struct{})}
}

// Cancel is used to signal the operation to stop. The operation may still be
// running when Cancel returns.
func (c *asyncCtl) Cancel() {
	c.cancel()
}

func (c *asyncCtl) Context() context.Context {
	return c.ctx
}

// Release is used to inform that the operation has stopped.
// Should only be called once in one asyncCtl's lifecycle.
func (c *asyncCtl) Release() {
	c.cancel()
	close(c.waitCh)
}

// WaitRelease is used with select to wait for the operation to stop.
func (c *asyncCtl) WaitRelease() <-chan struct{} {
	return c.waitCh
}
