// Package health serves liveness and readiness probes for long-running
// wdlint processes.
//
// wdlint watch mounts the probes next to the metrics endpoint:
//
//   - /healthz: the process is running
//   - /readyz: every registered check passes (the history store answers and
//     the last lint batch completed)
//   - /version: build information
//
// Readiness answers 503 with the failing checks when the watcher is degraded:
//
//	{
//	    "status": "degraded",
//	    "checks": {
//	        "store": {"status": "ok"},
//	        "lint": {"status": "unhealthy", "message": "open main.wdl: permission denied"}
//	    },
//	    "timestamp": "2026-01-20T10:30:00Z"
//	}
package health
