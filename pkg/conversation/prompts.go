package conversation

import (
	"fmt"

	"github.com/ledscape/intake/pkg/domain"
)

func welcomePrompt() domain.Response {
	return domain.Reply(
		"Hello! I can put together an LED wall quote for you in a couple of minutes.\n"+
			"What kind of service are you looking for?",
		"LED Installation", "install",
		"LED Rental", "rental",
		"Membership", "membership",
	)
}

func ledCountPrompt(service domain.ServiceType) domain.Response {
	verb := "install"
	if service == domain.ServiceRental {
		verb = "set up"
	}
	return domain.Reply(
		fmt.Sprintf("How many LED walls should we %s at your event?", verb),
		"1", "1",
		"2", "2",
		"3", "3",
	)
}

func ledSizePrompt(index, total int) domain.Response {
	return domain.Reply(
		fmt.Sprintf("LED #%d of %d — what size should it be?\n"+
			"Width x height in millimeters, in 500mm steps (e.g. 6000x3000).", index, total),
		"4000x2500", "4000x2500",
		"6000x3000", "6000x3000",
	)
}

func stageHeightPrompt(index int) domain.Response {
	return domain.Reply(
		fmt.Sprintf("How high is the stage for LED #%d, in millimeters? Enter 0 if it stands on the floor.", index),
		"0", "0",
		"600", "600",
		"1000", "1000",
	)
}

func operatorNeedPrompt(index int) domain.Response {
	return domain.Reply(
		fmt.Sprintf("Do you need an on-site operator for LED #%d?", index),
		"Yes", "yes",
		"No", "no",
	)
}

func operatorDaysPrompt(index int) domain.Response {
	return domain.Reply(
		fmt.Sprintf("For how many days do you need the operator for LED #%d?", index),
		"1", "1",
		"2", "2",
		"3", "3",
	)
}

func schedulePrompt() domain.Response {
	return domain.Reply(
		"When does your event run?\n" +
			"Enter the period as START ~ END (e.g. 2026-09-20 ~ 2026-09-22), or a single date.",
	)
}

func venuePrompt() domain.Response {
	return domain.Reply("Where is the venue? (name and city is enough)")
}

func companyPrompt(service domain.ServiceType) domain.Response {
	if service == domain.ServiceMembership {
		return domain.Reply(
			"Membership pricing is tailored to your usage, so one of our managers will " +
				"prepare it personally.\nFirst, what company or team is this for?",
		)
	}
	return domain.Reply("Almost done. What company or team is this for?")
}

func contactNamePrompt() domain.Response {
	return domain.Reply("Who should we talk to? Please give me a name.")
}

func contactTitlePrompt() domain.Response {
	return domain.Reply("And their title? (e.g. Manager, Director)")
}

func contactPhonePrompt() domain.Response {
	return domain.Reply("What's the best mobile number to reach them? (e.g. 010-1234-5678)")
}

func confirmPrompt(s *domain.Session) domain.Response {
	var text string
	if s.Service == domain.ServiceMembership {
		text = fmt.Sprintf(
			"Let me confirm: membership inquiry for %s, contact %s (%s, %s).\nShall I send this to our team?",
			s.Draft.Company, s.Draft.ContactName, s.Draft.ContactTitle, s.Draft.ContactPhone,
		)
	} else {
		text = fmt.Sprintf(
			"Let me confirm your request:\n"+
				"- Service: %s\n"+
				"- LED walls: %d\n"+
				"- Period: %s ~ %s (%d day(s))\n"+
				"- Venue: %s\n"+
				"- Contact: %s %s, %s (%s)\n\n"+
				"Shall I calculate the quote and send your request to our team?",
			s.Service, s.LEDCount,
			s.Draft.Period.Start.Format("2006-01-02"), s.Draft.Period.End.Format("2006-01-02"), s.Draft.Period.Days(),
			s.Draft.Venue,
			s.Draft.ContactName, s.Draft.ContactTitle, s.Draft.Company, s.Draft.ContactPhone,
		)
	}
	return domain.Reply(text, "Confirm", "yes", "Not yet", "no")
}

func donePrompt() domain.Response {
	return domain.Reply(
		"Your request has been submitted. Say \"start over\" whenever you want a new quote.",
		"Start over", "start over",
	)
}

func modifyConfirmPrompt() domain.Response {
	return domain.Reply(
		"Do you want to change an earlier answer? I can restart from the beginning, or we can continue where we are.",
		"Restart", "start over",
		"Continue", "continue",
	)
}

func apologyPrompt() domain.Response {
	return domain.Reply(
		"I'm sorry, something went wrong on our side while processing that. " +
			"Your answers are safe; please try again.",
	)
}

func fallbackPrompt() domain.Response {
	return domain.Reply(
		"Sorry, I didn't understand that. You can always say \"start over\" to begin again.",
		"Start over", "start over",
	)
}

// promptFor re-renders the question for the session's current step. Used
// after "go back", after "continue", and whenever a step must be re-asked
// without advancing.
func promptFor(s *domain.Session) domain.Response {
	switch s.Step {
	case domain.StepStart, domain.StepSelectService:
		return welcomePrompt()
	case domain.StepLEDCount:
		return ledCountPrompt(s.Service)
	case domain.StepLEDSize:
		return ledSizePrompt(s.CurrentLED, s.LEDCount)
	case domain.StepStageHeight:
		return stageHeightPrompt(s.CurrentLED)
	case domain.StepOperatorNeed:
		return operatorNeedPrompt(s.CurrentLED)
	case domain.StepOperatorDays:
		return operatorDaysPrompt(s.CurrentLED)
	case domain.StepSchedule:
		return schedulePrompt()
	case domain.StepVenue:
		return venuePrompt()
	case domain.StepCompany:
		return companyPrompt(s.Service)
	case domain.StepContactName:
		return contactNamePrompt()
	case domain.StepContactTitle:
		return contactTitlePrompt()
	case domain.StepContactPhone:
		return contactPhonePrompt()
	case domain.StepConfirm:
		return confirmPrompt(s)
	case domain.StepDone:
		return donePrompt()
	}
	return fallbackPrompt()
}

// retry prefixes a validation message to the re-asked question.
func retry(err error, question domain.Response) domain.Response {
	question.Text = err.Error() + "\n\n" + question.Text
	return question
}
