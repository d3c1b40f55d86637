package domain

import "time"

// ModulePitchMM is the edge length of a single physical LED module.
// All wall dimensions are multiples of this pitch.
const ModulePitchMM = 500

// LEDSpec describes one physical LED wall instance within an event.
type LEDSpec struct {
	WidthMM      int  `json:"width_mm"`
	HeightMM     int  `json:"height_mm"`
	StageHeight  int  `json:"stage_height_mm"`
	NeedOperator bool `json:"need_operator"`
	OperatorDays int  `json:"operator_days,omitempty"`
}

// ModuleCount returns the number of 500x500mm modules the wall is built from.
// It assumes validated dimensions; callers that cannot assume validation must
// check Exact first.
func (s LEDSpec) ModuleCount() int {
	return (s.WidthMM / ModulePitchMM) * (s.HeightMM / ModulePitchMM)
}

// Exact reports whether the dimensions decompose into whole modules.
// A false result after validation indicates an internal consistency bug.
func (s LEDSpec) Exact() bool {
	return s.WidthMM > 0 && s.HeightMM > 0 &&
		s.WidthMM%ModulePitchMM == 0 && s.HeightMM%ModulePitchMM == 0
}

// AreaSQM returns the wall footprint in square meters.
func (s LEDSpec) AreaSQM() float64 {
	return float64(s.WidthMM) * float64(s.HeightMM) / 1_000_000
}

// Period is an inclusive event date range.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the inclusive day count of the period.
func (p Period) Days() int {
	if p.Start.IsZero() || p.End.IsZero() {
		return 0
	}
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// Draft accumulates the answers collected during the dialogue.
type Draft struct {
	Specs        []LEDSpec `json:"specs"`
	Period       Period    `json:"period"`
	Venue        string    `json:"venue,omitempty"`
	Company      string    `json:"company,omitempty"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactTitle string    `json:"contact_title,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
}

// clone returns a deep copy so drafts never share the spec slice.
func (d Draft) clone() Draft {
	out := d
	out.Specs = make([]LEDSpec, len(d.Specs))
	copy(out.Specs, d.Specs)
	return out
}

// Snapshot is a one-level undo checkpoint of the forward-moving session
// fields. Holding it as a single optional value (rather than parallel
// shadow fields) makes the "at most one level" invariant structural.
type Snapshot struct {
	Step       Step        `json:"step"`
	Service    ServiceType `json:"service,omitempty"`
	LEDCount   int         `json:"led_count"`
	CurrentLED int         `json:"current_led"`
	Draft      Draft       `json:"draft"`
}

// Session is the unit of conversation state, one per user identifier.
type Session struct {
	UserID  string      `json:"user_id"`
	Step    Step        `json:"step"`
	Service ServiceType `json:"service,omitempty"`

	// LEDCount is how many LED points the user declared; CurrentLED is the
	// 1-indexed point currently being specified (CurrentLED <= LEDCount
	// while inside the collection loop).
	LEDCount   int `json:"led_count"`
	CurrentLED int `json:"current_led"`

	Draft Draft `json:"draft"`

	// Undo holds at most one level of history. Consumed and cleared by a
	// single "go back"; a second consecutive go back finds it nil.
	Undo *Snapshot `json:"undo,omitempty"`

	// Sealed carries the encrypted payload when a store middleware wraps
	// the session in an opaque envelope. Empty for plain sessions.
	Sealed string `json:"sealed,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a clean session positioned at the start step.
func NewSession(userID string) *Session {
	now := time.Now().UTC()
	return &Session{
		UserID:     userID,
		Step:       StepStart,
		LEDCount:   0,
		CurrentLED: 1,
		Draft:      Draft{Specs: []LEDSpec{}},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Reset returns the session to its initial state in place, preserving only
// the user identity and creation time.
func (s *Session) Reset() {
	s.Step = StepStart
	s.Service = ""
	s.LEDCount = 0
	s.CurrentLED = 1
	s.Draft = Draft{Specs: []LEDSpec{}}
	s.Undo = nil
	s.UpdatedAt = time.Now().UTC()
}

// Checkpoint records the current forward state as the undo target,
// replacing any prior checkpoint.
func (s *Session) Checkpoint() {
	s.Undo = &Snapshot{
		Step:       s.Step,
		Service:    s.Service,
		LEDCount:   s.LEDCount,
		CurrentLED: s.CurrentLED,
		Draft:      s.Draft.clone(),
	}
}

// Rollback restores the last checkpoint and clears it. It reports whether a
// checkpoint existed; when none does the session is left untouched.
func (s *Session) Rollback() bool {
	if s.Undo == nil {
		return false
	}
	snap := s.Undo
	s.Step = snap.Step
	s.Service = snap.Service
	s.LEDCount = snap.LEDCount
	s.CurrentLED = snap.CurrentLED
	s.Draft = snap.Draft.clone()
	s.Undo = nil
	s.UpdatedAt = time.Now().UTC()
	return true
}

// Clone returns a deep copy of the session. Stores use it so no two callers
// ever share mutable sub-objects.
func (s *Session) Clone() *Session {
	out := *s
	out.Draft = s.Draft.clone()
	if s.Undo != nil {
		snap := *s.Undo
		snap.Draft = s.Undo.Draft.clone()
		out.Undo = &snap
	}
	return &out
}

// CurrentSpec returns a pointer to the LED spec under collection, growing the
// slice if the loop just entered a new index.
func (s *Session) CurrentSpec() *LEDSpec {
	for len(s.Draft.Specs) < s.CurrentLED {
		s.Draft.Specs = append(s.Draft.Specs, LEDSpec{})
	}
	return &s.Draft.Specs[s.CurrentLED-1]
}
