// Package asciinema builds command lines for the asciinema recorder.
package asciinema

import "strconv"

// DefaultBinary is the program name resolved on PATH.
const DefaultBinary = "asciinema"

// RecordOptions configures `asciinema rec`.
type RecordOptions struct {
	Output string
	Cols   int
	Rows   int
	// Command is run by asciinema through a shell and recorded.
	Command string
}

// Args returns the argument list for recording Command into Output,
// overwriting any existing file.
func (o RecordOptions) Args() []string {
	return []string{
		"rec",
		"--overwrite",
		"-q",
		"--cols", strconv.Itoa(o.Cols),
		"--rows", strconv.Itoa(o.Rows),
		o.Output,
		"-c", o.Command,
	}
}
