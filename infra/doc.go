// Package infra holds the technical adapters of the parking service:
// storage backends, the MQTT publisher, metrics sinks, the AI completion
// client and the zerolog logger. Adapters depend on core interfaces, never
// the other way around.
package infra
