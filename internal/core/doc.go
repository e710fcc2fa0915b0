// Package core holds the small service abstractions shared by the gram
// commands: filesystem access, subprocess execution, permissions and timeouts.
package core
