package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/ledscape/intake/pkg/domain"
)

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// width returns the terminal width, defaulting to 80 when unknown.
func width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// PrintResponse renders one bot reply: wrapped text, then quick replies as a
// dimmed suggestion row.
func PrintResponse(resp domain.Response) {
	p := termenv.ColorProfile()

	for _, line := range strings.Split(resp.Text, "\n") {
		for _, wrapped := range wrap(line, width()-2) {
			fmt.Println(termenv.String(wrapped).Foreground(p.Color("#a5b4fc")))
		}
	}

	if len(resp.QuickReplies) > 0 {
		var labels []string
		for _, qr := range resp.QuickReplies {
			labels = append(labels, "["+qr.Label+"]")
		}
		fmt.Println(termenv.String("  " + strings.Join(labels, " ")).Faint())
	}
	fmt.Println()
}

// wrap splits a line into chunks of at most w runes on word boundaries.
// Words longer than w are emitted as-is.
func wrap(line string, w int) []string {
	if w <= 0 || len([]rune(line)) <= w {
		return []string{line}
	}

	var out []string
	var cur strings.Builder
	curLen := 0
	for _, word := range strings.Fields(line) {
		wordLen := len([]rune(word))
		if curLen > 0 && curLen+1+wordLen > w {
			out = append(out, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(word)
		curLen += wordLen
	}
	if curLen > 0 {
		out = append(out, cur.String())
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}
