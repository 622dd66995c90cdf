// Package loader wires self-contained features onto the HTTP gateway.
//
// Each feature implements the Feature interface and registers its own
// routes. The Manager loads them in registration order at startup.
package loader
