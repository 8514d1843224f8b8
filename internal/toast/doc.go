// Package toast provides the process-wide queue of transient notifications.
//
// Toasts are listed in insertion order and each one expires on its own timer. A toast can
// also be dismissed early by id. Errors that terminate at the controller (failed searches,
// failed clears) surface here rather than as returned errors.
package toast
