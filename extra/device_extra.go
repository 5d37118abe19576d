// Package extra parses the output of common device shell commands.
package extra

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"

	adb "github.com/d1ced/adbexec"
)

// Shell is the part of *adb.Client the helpers need.
type Shell interface {
	Shell(command string) (adb.Result, error)
}

type Process struct {
	User string
	Pid  int
	Name string
}

// shellOutput runs command and turns a nonzero exit code into an error.
func shellOutput(s Shell, command string) ([]byte, error) {
	res, err := s.Shell(command)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return res.Output, nil
}

// ListProcesses return list of Process
func ListProcesses(s Shell) ([]Process, error) {
	// example output of command "ps":
	//     USER  PID  PPID  VSIZE  RSS  WCHAN     PC         NAME
	//     root    1     0    684  540  ffffffff  00000000 S /init
	//     root    2     0      0    0  ffffffff  00000000 S kthreadd
	out, err := shellOutput(s, "ps")
	if err != nil {
		return nil, err
	}
	return parseProcesses(out)
}

func parseProcesses(out []byte) ([]Process, error) {
	var (
		fieldNames []string
		pp         = make([]Process, 0, 4)
		scanner    = bufio.NewScanner(bytes.NewReader(out))
	)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fieldNames == nil {
			// as first row
			fieldNames = fields
			continue
		}
		// older ps prints an unlabeled state column before NAME
		if len(fields) < len(fieldNames) {
			return nil, errors.Errorf("unexpected ps line: %q", scanner.Text())
		}

		var process Process
		for index, name := range fieldNames {
			value := fields[index]
			switch strings.ToUpper(name) {
			case "PID":
				process.Pid, _ = strconv.Atoi(value)
			case "NAME":
				process.Name = fields[len(fields)-1]
			case "USER":
				process.User = value
			}
		}
		if process.Pid == 0 {
			continue
		}
		pp = append(pp, process)
	}
	return pp, errors.Wrap(scanner.Err(), "error reading ps output")
}

// KillProcessByName sends sig to every process called name.
func KillProcessByName(s Shell, name string, sig syscall.Signal) error {
	pp, err := ListProcesses(s)
	if err != nil {
		return err
	}
	for _, p := range pp {
		if p.Name != name {
			continue
		}
		cmd := "kill -" + strconv.Itoa(int(sig)) + " " + strconv.Itoa(p.Pid)
		if _, err := shellOutput(s, cmd); err != nil {
			return errors.Wrapf(err, "kill %s (%d)", p.Name, p.Pid)
		}
	}
	return nil
}

type PackageInfo struct {
	Name    string
	Path    string
	Version struct {
		Code int
		Name string
	}
}

var (
	rePkgPath = regexp.MustCompile(`codePath=([^\s]+)`)
	reVerCode = regexp.MustCompile(`versionCode=(\d+)`)
	reVerName = regexp.MustCompile(`versionName=([^\s]+)`)

	ErrPackageNotExist = errors.New("package does not exist")
)

// StatPackage returns PackageInfo
// If package not found, err will be ErrPackageNotExist
func StatPackage(s Shell, packageName string) (PackageInfo, error) {
	out, err := shellOutput(s, "dumpsys package "+packageName)
	if err != nil {
		return PackageInfo{}, err
	}
	return parsePackage(packageName, out)
}

func parsePackage(packageName string, out []byte) (PackageInfo, error) {
	matches := rePkgPath.FindSubmatch(out)
	if len(matches) == 0 {
		return PackageInfo{}, ErrPackageNotExist
	}
	path := matches[1]

	matches = reVerCode.FindSubmatch(out)
	if len(matches) == 0 {
		return PackageInfo{}, ErrPackageNotExist
	}
	versionCode, _ := strconv.Atoi(string(matches[1]))

	matches = reVerName.FindSubmatch(out)
	if len(matches) == 0 {
		return PackageInfo{}, ErrPackageNotExist
	}

	pi := PackageInfo{
		Name: packageName,
		Path: string(path),
	}
	pi.Version.Code = versionCode
	pi.Version.Name = string(matches[1])
	return pi, nil
}
