package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

var errNoStdin = errors.New("stdin unavailable")

// readPasswordNoEcho reads one line with terminal echo switched off for the duration.
func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errNoStdin
	}

	restore, err := disableEcho(stdin)
	if err != nil {
		return nil, err
	}
	defer restore()

	return readLine(stdin)
}

func readLine(reader io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
