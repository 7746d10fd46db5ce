package nllfit

import (
	"sync"

	"github.com/hepstats/fitbench/pkg/pdf"
)

// Device is the accelerator backend contract. A backend registers itself at
// process start (typically from an init function behind a build tag); no
// backend ships in a default build, so StrategyAccelerator reports
// StrategyUnavailableError unless one is present.
type Device interface {
	// Name identifies the backend in logs and benchmark reports.
	Name() string

	// Bind uploads the observation array to the device once and returns a
	// handle for repeated evaluations against it. The array is immutable for
	// the life of the binding; only parameter values change between calls.
	Bind(xs []float64) (DeviceBatch, error)
}

// DeviceBatch is a device-resident observation array. Evaluate transfers the
// current parameter values in and the density array out; the observations
// themselves stay on the device.
type DeviceBatch interface {
	Evaluate(m *pdf.Mixture, dst []float64) error
	Close() error
}

var (
	deviceMu sync.RWMutex
	device   Device
)

// RegisterDevice installs the accelerator backend. Later registrations
// replace earlier ones; passing nil removes the backend (used by tests).
func RegisterDevice(d Device) {
	deviceMu.Lock()
	device = d
	deviceMu.Unlock()
}

// HasDevice reports whether an accelerator backend is registered.
func HasDevice() bool {
	_, ok := registeredDevice()
	return ok
}

func registeredDevice() (Device, bool) {
	deviceMu.RLock()
	defer deviceMu.RUnlock()
	return device, device != nil
}
