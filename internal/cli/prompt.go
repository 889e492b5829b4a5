package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var ErrEmptySecret = errors.New("secret is required")

// PromptSecret reads one line from in with terminal echo disabled. When in is
// not a terminal the line is read as-is.
func PromptSecret(prompt string, in *os.File, out io.Writer) (string, error) {
	if in == nil {
		return "", errors.New("stdin unavailable")
	}
	if prompt != "" {
		fmt.Fprint(out, prompt)
	}

	raw, err := readSecretNoEcho(in)
	if err != nil {
		raw, err = readLine(in)
		if err != nil {
			return "", err
		}
	} else {
		fmt.Fprintln(out)
	}

	secret := strings.TrimSpace(string(raw))
	if secret == "" {
		return "", ErrEmptySecret
	}
	return secret, nil
}

func readLine(in io.Reader) ([]byte, error) {
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
