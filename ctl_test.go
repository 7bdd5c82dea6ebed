package tossup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAsyncCtl(t *testing.T) {
	ctl := newAsyncCtl(context.Background())
	go func() {
		defer ctl.Release()
		time.Sleep(100 * time.Millisecond)
	}()
	ctl.Cancel()
	select {
	case <-time.NewTimer(3000 * time.Millisecond).C:
		assert.FailNow(t, "timed out waiting for asyncCtl's release")
	case <-ctl.WaitRelease():
		return
	}
}

func TestAsyncCtlParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctl := newAsyncCtl(parent)
	go func() {
		defer ctl.Release()
		<-ctl.Context().Done()
	}()
	cancel()
	select {
	case <-time.NewTimer(1000 * time.Millisecond).C:
		assert.FailNow(t, "timed out waiting for asyncCtl's release")
	case <-ctl.WaitRelease():
		assert.ErrorIs(t, ctl.Context().Err(), context.Canceled)
	}
}
