/*
Package ports defines the boundary interfaces of the intake core.

Adapters (memory, Redis, HTTP) depend on these interfaces rather than on each
other, keeping the conversation state machine and the quote engine free of
I/O concerns.
*/
package ports
