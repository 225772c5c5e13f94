package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

func GetSimpleText(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Println(prompt)
	text, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func GetPassword() ([]byte, error) {
	fmt.Println("-Enter password")
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// GetMultiline reads lines until an empty one.
func GetMultiline(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Println(prompt)

	var lines []string

	for {
		line, _ := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			break
		}

		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
