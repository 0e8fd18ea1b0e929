package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader reads command input from the --file flag or from piped stdin.
type FileReader[T any] struct {
	fileFlagValue string
	stdin         *os.File
}

// Flag returns the --file flag bound to the reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to input file (reads from stdin if piped)",
		Destination: &fr.fileFlagValue,
	}
}

func (fr *FileReader[T]) input() *os.File {
	if fr.stdin != nil {
		return fr.stdin
	}
	return os.Stdin
}

// Provided reports whether input is available: a file was named or stdin is
// not a terminal.
func (fr *FileReader[T]) Provided() bool {
	if fr.fileFlagValue != "" {
		return true
	}
	return !term.IsTerminal(int(fr.input().Fd()))
}

// ReadRaw returns the input bytes undecoded.
func (fr *FileReader[T]) ReadRaw() ([]byte, error) {
	if fr.fileFlagValue != "" {
		data, err := os.ReadFile(fr.fileFlagValue)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		return data, nil
	}

	if term.IsTerminal(int(fr.input().Fd())) {
		return nil, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe input")
	}
	return io.ReadAll(fr.input())
}

// Read decodes JSON input into T.
func (fr *FileReader[T]) Read() (T, error) {
	var input T

	data, err := fr.ReadRaw()
	if err != nil {
		return input, err
	}

	if err := json.Unmarshal(data, &input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}
	return input, nil
}
