// Package stack implements a bounded integer stack with explicit error
// reporting and pluggable allocation, the core artifact of the Bulwark
// defensive-programming toolkit. All failure modes surface as sentinel
// errors; no operation panics on misuse.
package stack
