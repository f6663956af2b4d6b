// Package ttyd builds command lines for the ttyd web terminal server.
package ttyd

import (
	"fmt"
	"strconv"
)

// DefaultBinary is the program name resolved on PATH.
const DefaultBinary = "ttyd"

// EnvVar is one KEY=VALUE assignment passed through env(1).
type EnvVar struct {
	Key   string
	Value string
}

func (e EnvVar) String() string {
	return e.Key + "=" + e.Value
}

// Options configures a ttyd invocation.
type Options struct {
	Port     uint16
	FontSize int
	Title    string
	// Env is prepended to Command with env(1) so the command sees it even
	// though ttyd does not forward its own environment selectively.
	Env     []EnvVar
	Command []string
}

// Args returns ttyd's argument list: the port, writable single-client
// mode, client options, then the command to run for each connection.
func (o Options) Args() []string {
	args := []string{
		"-p", strconv.Itoa(int(o.Port)),
		"-o",
		"-W",
		"-t", fmt.Sprintf("fontSize=%d", o.FontSize),
		"-t", "disableReconnect=true",
		"-t", "titleFixed=" + o.Title,
	}
	if len(o.Env) > 0 {
		args = append(args, "env")
		for _, e := range o.Env {
			args = append(args, e.String())
		}
	}
	return append(args, o.Command...)
}

// URL returns the loopback address ttyd serves on.
func URL(host string, port uint16) string {
	return fmt.Sprintf("http://%s:%d/", host, port)
}
