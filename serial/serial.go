// Package serial is the console log sink. On the board it writes to the
// USB CDC serial port; any io.Writer works.
package serial

import (
	"fmt"
	"io"
)

type Serial struct {
	out io.Writer
}

func NewSerial(out io.Writer) *Serial {
	return &Serial{out: out}
}

// Printf writes a formatted line; a trailing newline is added.
func (s *Serial) Printf(format string, args ...any) {
	if s == nil || s.out == nil {
		return
	}
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *Serial) Println(msg string) {
	if s == nil || s.out == nil {
		return
	}
	io.WriteString(s.out, msg+"\n")
}
