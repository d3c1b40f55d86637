package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledscape/intake"
	"github.com/ledscape/intake/internal/presentation/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant in your terminal",
	Long:  `Runs a local chat session against an in-memory assistant. Handy for trying the flow and checking quote output without standing up a server.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		assistant, err := intake.New(intake.WithConfig(cfg))
		if err != nil {
			fmt.Printf("Error initializing intake: %v\n", err)
			os.Exit(1)
		}

		if tui.IsInteractive() {
			tui.PrintBanner(intake.Version)
			fmt.Println("Type 'exit' to quit.")
			fmt.Println()
		}

		ctx := cmd.Context()
		const userID = "local"

		// Kick off the conversation before the first prompt.
		resp, err := assistant.Message(ctx, userID, "hello")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		tui.PrintResponse(resp)

		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println()
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}
			if text == "exit" || text == "quit" {
				fmt.Println("Bye!")
				return
			}

			resp, err := assistant.Message(ctx, userID, text)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			tui.PrintResponse(resp)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
