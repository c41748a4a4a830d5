//go:build !cgo

package hal

import (
	"context"
	"errors"
)

func RunWindow(_ context.Context, _ Config, _ NewApp) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
