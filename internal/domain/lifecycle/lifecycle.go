// Package lifecycle holds shared constants for component start and stop.
package lifecycle

import "time"

// DefaultTimeout bounds startup probes and graceful shutdown.
const DefaultTimeout = 10 * time.Second
