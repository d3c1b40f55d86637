/*
Package session implements session access orchestration.

The state machine assumes exclusive access to a session during a transition,
so the manager serializes message handling per user: locally with reference
counted mutexes, and optionally across replicas with a distributed locker.
*/
package session
