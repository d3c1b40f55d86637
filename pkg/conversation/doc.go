/*
Package conversation implements the intake state machine.

A Router classifies each inbound message as a global intent (modify, reset,
go back) or as an answer to the current step's question, then dispatches to
the matching step handler. Handlers validate input with pkg/validate, advance
the session, and at the terminal confirmation step invoke the quote engine
and the external collaborators.

The router only progresses a session on valid input; invalid input re-asks
the same question. Whatever state a session is in, dispatch always produces
some reply.
*/
package conversation
