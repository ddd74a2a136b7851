// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"os"
)

const hostidHelp = `Usage: hostid [OPTION]
Print the numeric identifier (in hexadecimal) for the current host.

  --help     display this help and exit
  --version  output version information and exit
`

// etcHostID is the file gethostid consults first; a variable so tests can
// point it at a fixture.
var etcHostID = "/etc/hostid"

// hostidApplet implements the hostid utility, mirroring glibc's gethostid:
// the stored 32-bit identifier when /etc/hostid exists, otherwise a value
// derived from the host's primary IPv4 address.
type hostidApplet struct{}

func init() {
	RegisterDefault(&hostidApplet{})
}

func (c *hostidApplet) Name() string { return "hostid" }

func (c *hostidApplet) Synopsis() string {
	return "print the numeric identifier for the current host"
}

func (c *hostidApplet) Run(ctx context.Context, args []string) error {
	hc := IOFrom(ctx)

	fs := NewFlagSet(c.Name())
	if stop, err := ParseArgs(fs, hc, c.Name(), hostidHelp, args[1:]); stop {
		return err
	}
	if operands := fs.Args(); len(operands) > 0 {
		return UsageErrorf(hc, c.Name(), "extra operand %q", operands[0])
	}

	_, err := fmt.Fprintf(hc.Stdout, "%08x\n", hostID())
	return err
}

// hostID resolves the 32-bit host identifier.
func hostID() uint32 {
	if data, err := os.ReadFile(etcHostID); err == nil && len(data) >= 4 {
		return binary.NativeEndian.Uint32(data)
	}

	addr := hostAddress()
	s := binary.LittleEndian.Uint32(addr)
	return s<<16 | s>>16
}

// hostAddress finds an IPv4 address for the local hostname, falling back to
// the loopback address the way gethostid does when resolution fails.
func hostAddress() []byte {
	loopback := []byte{127, 0, 0, 1}

	name, err := os.Hostname()
	if err != nil {
		return loopback
	}
	addrs, err := net.LookupIP(name)
	if err != nil {
		return loopback
	}
	for _, addr := range addrs {
		if v4 := addr.To4(); v4 != nil {
			return v4
		}
	}
	return loopback
}
