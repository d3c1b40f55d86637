package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledscape/intake/pkg/domain"
	"github.com/ledscape/intake/pkg/quote"
	"github.com/ledscape/intake/pkg/validate"
)

var quoteCmd = &cobra.Command{
	Use:   "quote SIZE [SIZE...]",
	Short: "Compute a quote without a conversation",
	Long: `Computes an itemized quote for one or more LED walls given as WIDTHxHEIGHT
in millimeters, e.g. 'intake quote 4000x2500 6000x3000'.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		stageHeight, _ := cmd.Flags().GetInt("stage-height")
		operatorDays, _ := cmd.Flags().GetInt("operator-days")

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		var specs []domain.LEDSpec
		for _, arg := range args {
			w, h, err := validate.LEDSize(arg)
			if err != nil {
				fmt.Printf("Error in size %q: %v\n", arg, err)
				os.Exit(1)
			}
			specs = append(specs, domain.LEDSpec{
				WidthMM:      w,
				HeightMM:     h,
				StageHeight:  stageHeight,
				NeedOperator: operatorDays > 0,
				OperatorDays: operatorDays,
			})
		}

		q, err := quote.Compute(specs, cfg.Pricing)
		if err != nil {
			fmt.Printf("Error computing quote: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(quote.RenderText(specs, q))
	},
}

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.Flags().Int("stage-height", 0, "Stage height in millimeters applied to every wall")
	quoteCmd.Flags().Int("operator-days", 0, "Operator days applied to every wall (0 for none)")
}
