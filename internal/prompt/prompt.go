package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm asks a yes/no question on out and reads the answer from in.
//
// With defaultNo set the prompt reads "(y/N)" and anything other than y or yes
// is a no. Otherwise the prompt reads "[yes/no]", the answer must be one of
// yes, y, no or n, and the question is repeated until it is. End of input is
// always a no.
func Confirm(in io.Reader, out io.Writer, question string, defaultNo bool) bool {
	reader := bufio.NewReader(in)

	for {
		if defaultNo {
			fmt.Fprintf(out, "%s (y/N): ", question)
		} else {
			fmt.Fprintf(out, "%s [yes/no]: ", question)
		}

		line, err := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))

		switch answer {
		case "yes", "y":
			return true
		case "no", "n":
			return false
		}

		if defaultNo || err != nil {
			if err != nil {
				fmt.Fprintln(out)
			}
			return false
		}

		fmt.Fprintln(out, "Please enter 'yes' or 'no'")
	}
}
