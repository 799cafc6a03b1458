package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects registered fx hooks so tests can run
// OnStart/OnStop directly instead of booting a full application.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append records the hook for later manual invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on its channel when a shutdown is requested.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown notifies the test without blocking when nobody listens.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
