package domain

// Step identifies the current state of a conversation.
// It drives handler dispatch in the conversation router.
type Step string

const (
	StepStart         Step = "start"
	StepSelectService Step = "select_service"
	StepLEDCount      Step = "led_count"

	// Per-LED collection loop. These repeat for each declared LED point,
	// tracked by Session.CurrentLED.
	StepLEDSize      Step = "led_size"
	StepStageHeight  Step = "stage_height"
	StepOperatorNeed Step = "operator_need"
	StepOperatorDays Step = "operator_days"

	StepSchedule     Step = "schedule"
	StepVenue        Step = "venue"
	StepCompany      Step = "customer_company"
	StepContactName  Step = "contact_name"
	StepContactTitle Step = "contact_title"
	StepContactPhone Step = "contact_phone"
	StepConfirm      Step = "final_confirmation"

	// StepDone is the terminal state after a quote has been submitted.
	StepDone Step = "done"
)

// ServiceType is the top-level branch of the conversation.
type ServiceType string

const (
	ServiceInstall    ServiceType = "install"
	ServiceRental     ServiceType = "rental"
	ServiceMembership ServiceType = "membership"
)

// Valid reports whether s is a known service type.
func (s ServiceType) Valid() bool {
	switch s {
	case ServiceInstall, ServiceRental, ServiceMembership:
		return true
	}
	return false
}
