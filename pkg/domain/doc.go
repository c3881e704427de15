// Package domain holds the core types of the Tessera dispatch model:
// Programs (the unit of dispatch), Requests and Responses, middleware
// units, control signals, primitives, and the framework error taxonomy.
//
// Everything in this package is transport-agnostic. Adapters (HTTP,
// command line) translate their native requests into these types and
// translate the final Response back out.
package domain
