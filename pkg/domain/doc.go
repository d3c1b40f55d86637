/*
Package domain contains the core domain models for the intake assistant.

It defines the fundamental entities of the conversation state machine, such as
the per-user Session, the LED wall specifications collected during the dialogue,
and the computed Quote. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Session: Captures the runtime snapshot of one user's conversation
    (current step, service type, draft answers, undo snapshot).
  - LEDSpec: One physical LED wall instance declared during the dialogue.
  - Quote: The itemized, VAT-inclusive cost breakdown for a set of LED specs.
  - Response: What the chat transport should render (text plus quick replies).
*/
package domain
