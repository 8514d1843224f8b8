// Package format provides display formatting for availability slots.
//
// All functions are total: they never return errors and never panic on odd input.
// Prices that cannot be read signal "no price" through a boolean, while dates and times
// that cannot be parsed are passed through unchanged.
package format
