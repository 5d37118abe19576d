package adb

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ForwardSpec protocols
const (
	FProtocolTCP        = "tcp"
	FProtocolJDWP       = "jdwp"
	FProtocolAbstract   = "localabstract"
	FProtocolReserved   = "localreserved"
	FProtocolFilesystem = "localfilesystem"
	FProtocolDev        = "dev"
)

// ForwardSpec is one end of a forward or reverse, e.g. "tcp:8080".
type ForwardSpec string

// TCP returns the spec for a tcp port.
func TCP(port int) ForwardSpec {
	return ForwardSpec(FProtocolTCP + ":" + strconv.Itoa(port))
}

// Port returns -1 if the endpoint has no port.
func (f ForwardSpec) Port() int {
	fields := strings.SplitN(string(f), ":", 2)
	if len(fields) < 2 {
		return -1
	}
	if fields[0] != FProtocolTCP {
		return -1
	}
	p, err := strconv.Atoi(fields[1])
	if err != nil {
		return -1
	}
	return p
}

func (f ForwardSpec) Protocol() string {
	fields := strings.SplitN(string(f), ":", 2)
	return fields[0]
}

// ParseForwardSpec validates s as a forward endpoint.
func ParseForwardSpec(s string) (ForwardSpec, error) {
	fields := strings.SplitN(s, ":", 2)
	if len(fields) != 2 || fields[1] == "" {
		return "", errors.Wrapf(ErrParsing, "malformed forward spec: %q", s)
	}
	switch fields[0] {
	case FProtocolTCP, FProtocolJDWP:
		if _, err := strconv.Atoi(fields[1]); err != nil {
			return "", errors.Wrapf(ErrParsing, "malformed pid or port: %s", fields[1])
		}
		return ForwardSpec(s), nil
	case FProtocolAbstract, FProtocolReserved, FProtocolFilesystem, FProtocolDev:
		return ForwardSpec(s), nil
	default:
		return "", errors.Wrapf(ErrParsing, "unrecognized protocol: %s", fields[0])
	}
}

// ForwardPair is one line of "forward --list" or "reverse --list".
type ForwardPair struct {
	Serial string
	Local  ForwardSpec
	Remote ForwardSpec
}

func parseForwardList(out string) ([]ForwardPair, error) {
	fs := make([]ForwardPair, 0, 2)
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, errors.Wrapf(ErrParsing, "malformed forward line: %q", scanner.Text())
		}
		local, err := ParseForwardSpec(fields[1])
		if err != nil {
			return nil, err
		}
		remote, err := ParseForwardSpec(fields[2])
		if err != nil {
			return nil, err
		}
		fs = append(fs, ForwardPair{fields[0], local, remote})
	}
	return fs, errors.Wrap(scanner.Err(), "error reading forward list")
}

// Forward forwards connections to local on the host to remote on the device.
func (c *Client) Forward(local, remote ForwardSpec) (Result, error) {
	return c.Run("forward", string(local), string(remote))
}

// ForwardRemove removes the forward listening on local.
func (c *Client) ForwardRemove(local ForwardSpec) (Result, error) {
	return c.Run("forward", "--remove", string(local))
}

// ForwardRemoveAll removes all forwards.
func (c *Client) ForwardRemoveAll() (Result, error) {
	return c.Run("forward", "--remove-all")
}

// ForwardList lists the forwards. With a serial target selected only that
// device's forwards are returned.
func (c *Client) ForwardList() ([]ForwardPair, error) {
	return c.listPairs("forward")
}

// Reverse forwards connections to remote on the device to local on the host.
func (c *Client) Reverse(remote, local ForwardSpec) (Result, error) {
	return c.Run("reverse", string(remote), string(local))
}

// ReverseRemove removes the reverse listening on remote.
func (c *Client) ReverseRemove(remote ForwardSpec) (Result, error) {
	return c.Run("reverse", "--remove", string(remote))
}

// ReverseRemoveAll removes all reverses of the target.
func (c *Client) ReverseRemoveAll() (Result, error) {
	return c.Run("reverse", "--remove-all")
}

// ReverseList lists the reverses of the target. For reverses Local holds
// the device side and Remote the host side, as adb prints them.
func (c *Client) ReverseList() ([]ForwardPair, error) {
	return c.listPairs("reverse")
}

func (c *Client) listPairs(sub string) ([]ForwardPair, error) {
	res, err := c.Run(sub, "--list")
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	pairs, err := parseForwardList(string(res.Output))
	if err != nil {
		return nil, errors.WithMessagef(err, "%s --list", sub)
	}
	serial := c.Target().Serial()
	if sub != "forward" || serial == "" {
		return pairs, nil
	}
	own := pairs[:0]
	for _, p := range pairs {
		if p.Serial == serial {
			own = append(own, p)
		}
	}
	return own, nil
}
