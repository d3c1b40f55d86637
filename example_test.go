package intake_test

import (
	"context"
	"fmt"
	"log"

	"github.com/ledscape/intake"
)

// Example demonstrates embedding the assistant directly, without the HTTP
// server. Every transport boils down to the same Message call.
func Example() {
	assistant, err := intake.New()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	resp, err := assistant.Message(ctx, "demo-user", "hi")
	if err != nil {
		log.Fatal(err)
	}

	for _, qr := range resp.QuickReplies {
		fmt.Println(qr.Label)
	}
	// Output:
	// LED Installation
	// LED Rental
	// Membership
}
