// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embedding and language model gateways,
// transcript sources, and index persistence.
package driven
