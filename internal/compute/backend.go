package compute

type Backend interface {
	Name() string
	Available() bool
	// Sweep invokes fn for every row in [0, rows) and returns once all
	// rows are complete. Row order is unspecified.
	Sweep(rows int, fn func(y int))
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

func AutoSelectBackend() Backend {
	return NewCPUBackend()
}
