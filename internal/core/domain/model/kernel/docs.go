// Package kernel contains shared value objects used across the domain model.
//
// The kernel holds the building blocks that every aggregate depends on but
// that belong to no single aggregate, currently the UUID identity value
// object. Types here are immutable, validated at construction, and safe for
// concurrent use.
package kernel
