package quote

import (
	"fmt"
	"strings"

	"github.com/ledscape/intake/pkg/domain"
	"github.com/ledscape/intake/pkg/validate"
)

// RenderText formats a quote as the plain-text block sent back into the chat.
func RenderText(specs []domain.LEDSpec, q domain.Quote) string {
	var b strings.Builder

	b.WriteString("Here is your quote.\n\n")
	for i, spec := range specs {
		fmt.Fprintf(&b, "LED #%d: %smm (%d modules)", i+1,
			validate.CanonicalSize(spec.WidthMM, spec.HeightMM), spec.ModuleCount())
		if spec.NeedOperator {
			fmt.Fprintf(&b, ", operator %d day(s)", spec.OperatorDays)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nTotal modules: %d (approx. %.1f kW)\n\n", q.TotalModules, q.PowerKW)

	fmt.Fprintf(&b, "Modules:      %s won\n", Won(q.Modules))
	fmt.Fprintf(&b, "Structure:    %s won\n", Won(q.Structure))
	fmt.Fprintf(&b, "Controller:   %s won\n", Won(q.Controller))
	fmt.Fprintf(&b, "Power:        %s won\n", Won(q.Power))
	fmt.Fprintf(&b, "Installation: %s won\n", Won(q.Installation))
	if q.Operator > 0 {
		fmt.Fprintf(&b, "Operator:     %s won\n", Won(q.Operator))
	}
	fmt.Fprintf(&b, "Transport:    %s won\n", Won(q.Transport))
	fmt.Fprintf(&b, "\nSubtotal:     %s won\n", Won(q.Subtotal))
	fmt.Fprintf(&b, "VAT:          %s won\n", Won(q.VAT))
	fmt.Fprintf(&b, "Total:        %s won (VAT included)", Won(q.Total))

	return b.String()
}

// Won renders an integer amount with thousands separators.
func Won(amount int) string {
	s := fmt.Sprintf("%d", amount)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
