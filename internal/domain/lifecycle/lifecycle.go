// Package lifecycle holds shared start/stop settings for long-lived components.
package lifecycle

import "time"

// DefaultTimeout bounds a single start or stop hook (pings, graceful shutdown).
const DefaultTimeout = 10 * time.Second
