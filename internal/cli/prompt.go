package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// readAnswer reads one trimmed line. A final line without a newline is
// returned together with io.EOF.
func readAnswer(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), err
}

// promptString asks for a value. An empty answer selects defaultValue.
func promptString(reader *bufio.Reader, out io.Writer, label, defaultValue string) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Fprintf(out, "%s [%s]: ", label, defaultValue)
		} else {
			fmt.Fprintf(out, "%s: ", label)
		}
		answer, err := readAnswer(reader)
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		switch {
		case answer != "":
			return answer, nil
		case defaultValue != "":
			return defaultValue, nil
		case err != nil:
			return "", fmt.Errorf("missing input for %s", label)
		}
	}
}

// promptYesNo asks a yes/no question. An empty answer or end of input selects
// defaultYes.
func promptYesNo(reader *bufio.Reader, out io.Writer, label string, defaultYes bool) (bool, error) {
	suffix := "y/N"
	if defaultYes {
		suffix = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", label, suffix)
		answer, err := readAnswer(reader)
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("invalid response %q", answer)
		}
		fmt.Fprintln(out, "Please answer yes or no.")
	}
}
