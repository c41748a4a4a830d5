package hal

import (
	"context"
	"runtime"
)

// drawLoop runs step as fast as it returns until ctx is done. A step error
// ends the loop and is returned.
func drawLoop(ctx context.Context, step Step) error {
	if step == nil {
		<-ctx.Done()
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if err := step(); err != nil {
			return err
		}
		runtime.Gosched()
	}
}

// takeRepaint consumes a pending repaint signal without blocking.
func takeRepaint(repaints <-chan struct{}) bool {
	select {
	case <-repaints:
		return true
	default:
		return false
	}
}
