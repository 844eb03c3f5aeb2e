// Package dispatch delivers composed alerts through a pluggable transport.
//
// The dispatcher never decides *whether* to alert (that is the policy's
// job); it only tries hard to deliver what it is given: bounded retries
// with exponential backoff on the primary transport, then a best-effort
// webhook side channel whose outcome is deliberately invisible to callers.
package dispatch
