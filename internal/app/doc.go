// Package app composes the IT infrastructure access service.
//
// # Layout
//
//	internal/app/
//	├── application.go   # server instances and background lifecycle
//	├── domain/          # element beans, properties and enums
//	├── handlers/        # generic element handler over a repository
//	├── services/        # facade per element family (assets, processes, ...)
//	├── instance/        # per-server instance and registry
//	├── storage/         # repository interface, memory and postgres stores
//	├── events/          # out-topic publishers (websocket hub, redis)
//	├── httpapi/         # REST endpoints
//	├── metrics/         # prometheus collectors
//	├── discovery/       # host property discovery
//	├── runtime/         # process wiring: database, HTTP server, shutdown
//	└── system/          # start/stop ordering of background services
//
// # Dependency Direction
//
//	cmd/itinfra
//	      │
//	      ▼
//	internal/app/runtime ──► internal/app (composition)
//	                               │
//	                               ├──► instance ──► services ──► handlers ──► storage
//	                               ├──► events
//	                               └──► metrics
package app
