// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go: every filesystem, archive and network
// dependency arrives through a driven port.
package services
