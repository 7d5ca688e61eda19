package cli

import (
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question on out and reads the answer from in. An
// empty answer or a read failure yields defaultYes and false respectively.
func confirm(in io.Reader, out io.Writer, question string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(out, "%s %s: ", question, hint)

	answer, err := readLine(in)
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	default:
		return false
	}
}

// readLine reads up to LF or CR, so Enter works in both cooked and raw
// terminal modes. Input ending without a newline still counts.
func readLine(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}
	var line []byte
	var b [1]byte
	for {
		n, err := in.Read(b[:])
		if n > 0 {
			if b[0] == '\n' || b[0] == '\r' {
				return string(line), nil
			}
			line = append(line, b[0])
		}
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				return string(line), nil
			}
			return string(line), err
		}
	}
}
