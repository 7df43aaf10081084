package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"qotaunpack/internal/config"
)

func resolveKey(value string, stdin io.Reader, stderr io.Writer) ([]byte, error) {
	switch value {
	case "":
		return nil, errors.New("you must supply a key with --key or in the config file")
	case config.KeyPrompt:
		s, err := readKey(stdin, stderr)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read key")
		}
		return config.ParseKey(s)
	default:
		return config.ParseKey(value)
	}
}

// readKey prompts without echo on a terminal and otherwise reads one line.
func readKey(stdin io.Reader, stderr io.Writer) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(stderr, "AES-128 key (hex): ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return line, nil
}
