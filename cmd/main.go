package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/cheggaaa/pb"
	"github.com/pkg/errors"

	adb "github.com/d1ced/adbexec"
)

const StdIoFilename = "-"

var (
	configFile = kingpin.Flag("config",
		"YAML config file.").
		Envar("ADBEXEC_CONFIG").
		ExistingFile()
	executable = kingpin.Flag("adb",
		"Path of the adb executable.").
		Envar("ADB_PATH").
		String()
	serial = kingpin.Flag("serial",
		"Use device with given serial.").
		Short('s').
		Envar("ANDROID_SERIAL").
		String()
	transportID = kingpin.Flag("transport-id",
		"Use device with given transport id.").
		Short('t').
		String()
	usbFlag = kingpin.Flag("usb",
		"Use USB device.").
		Short('d').
		Bool()
	emulatorFlag = kingpin.Flag("emulator",
		"Use TCP/IP device.").
		Short('e').
		Bool()
	disableFlag = kingpin.Flag("disable",
		"Print commands without running adb.").
		Bool()
	logCommandFlag = kingpin.Flag("log-command",
		"Log every adb command line.").
		Bool()
	logOutputFlag = kingpin.Flag("log-output",
		"Log the output of every adb command.").
		Bool()
	logFormat = kingpin.Flag("log-format",
		"Log format.").
		Default("text").
		Enum("text", "json")
	verbose = kingpin.Flag("verbose",
		"Debug logging.").
		Short('v').
		Bool()

	devicesCommand = kingpin.Command("devices",
		"List devices.")
	devicesLongFlag = devicesCommand.Flag("long",
		"Include extra detail about devices.").
		Short('l').
		Bool()

	shellCommand = kingpin.Command("shell",
		"Run a shell command on the device.")
	shellCommandArg = shellCommand.Arg("command",
		"Command to run on device.").
		Required().
		Strings()

	execOutCommand = kingpin.Command("exec-out",
		"Run a command on the device without a pty.")
	execOutCommandArg = execOutCommand.Arg("command",
		"Command to run on device.").
		Required().
		Strings()

	pushCommand = kingpin.Command("push",
		"Push a file to the device.")
	pushSyncFlag = pushCommand.Flag("sync",
		"Only push files that are newer on the host.").
		Bool()
	pushLocalArg = pushCommand.Arg("local",
		"Path of source file.").
		Required().
		String()
	pushRemoteArg = pushCommand.Arg("remote",
		"Path of destination file on device.").
		Required().
		String()

	pullCommand = kingpin.Command("pull",
		"Pull a file from the device.")
	pullRemoteArg = pullCommand.Arg("remote",
		"Path of source file on device.").
		Required().
		String()
	pullLocalArg = pullCommand.Arg("local",
		"Path of destination file.").
		String()

	installCommand = kingpin.Command("install",
		"Install a package.")
	installReplaceFlag = installCommand.Flag("replace",
		"Replace existing application.").
		Short('r').
		Bool()
	installPathArg = installCommand.Arg("package",
		"Path of the package on the host.").
		Required().
		String()

	uninstallCommand = kingpin.Command("uninstall",
		"Remove a package.")
	uninstallKeepFlag = uninstallCommand.Flag("keep",
		"Keep the data and cache directories.").
		Short('k').
		Bool()
	uninstallNameArg = uninstallCommand.Arg("package",
		"Package name.").
		Required().
		String()

	syncCommand = kingpin.Command("sync",
		"Sync a local build to the device.")
	syncPartitionArg = syncCommand.Arg("partition",
		"Partition to sync.").
		String()

	bugreportCommand = kingpin.Command("bugreport",
		"Write a bug report.")
	bugreportOutFlag = bugreportCommand.Flag("output",
		"File to write the report to. If -, writes to stdout.").
		Short('o').
		Default(StdIoFilename).
		String()
	bugreportProgressFlag = bugreportCommand.Flag("progress",
		"Show progress and size stats while writing the captured report.").
		Short('p').
		Bool()

	forwardCommand = kingpin.Command("forward",
		"Forward a host socket to the device.")
	forwardListFlag = forwardCommand.Flag("list",
		"List forwards").
		Short('l').
		Bool()
	forwardRemoveAllFlag = forwardCommand.Flag("remove-all",
		"Remove all forwards.").
		Bool()
	forwardLocalArg = forwardCommand.Arg("local",
		"Host side, e.g. tcp:8080.").
		String()
	forwardRemoteArg = forwardCommand.Arg("remote",
		"Device side, e.g. tcp:8080.").
		String()

	reverseCommand = kingpin.Command("reverse",
		"Forward a device socket to the host.")
	reverseListFlag = reverseCommand.Flag("list",
		"List reverses").
		Short('l').
		Bool()
	reverseRemoteArg = reverseCommand.Arg("remote",
		"Device side, e.g. tcp:8080.").
		String()
	reverseLocalArg = reverseCommand.Arg("local",
		"Host side, e.g. tcp:8080.").
		String()

	rebootCommand = kingpin.Command("reboot",
		"Reboot the device.")
	rebootModeArg = rebootCommand.Arg("mode",
		"bootloader, recovery or sideload.").
		Enum("bootloader", "recovery", "sideload")

	emuCommand = kingpin.Command("emu",
		"Run an emulator console command.")
	emuArgs = emuCommand.Arg("args",
		"Console command.").
		Required().
		Strings()

	_ = kingpin.Command("get-serialno", "Print the serial number.")
	_ = kingpin.Command("get-state", "Print the device state.")
	_ = kingpin.Command("start-server", "Ensure the server is running.")
	_ = kingpin.Command("kill-server", "Kill the server if it is running.")
	_ = kingpin.Command("version", "Show version.")
	_ = kingpin.Command("wait-for-device", "Wait for the device to be online.")
	_ = kingpin.Command("root", "Restart adbd with root permissions.")
)

var client *adb.Client

func main() {
	command := kingpin.Parse()
	setupLogging()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	client = adb.New(cfg)
	selectTarget()

	os.Exit(run(command))
}

func setupLogging() {
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if *logFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadConfig reads the config file, if any, and applies the flags on top.
func loadConfig() (adb.Config, error) {
	cfg := adb.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = adb.LoadConfig(*configFile); err != nil {
			return cfg, err
		}
	}
	if *executable != "" {
		cfg.Executable = *executable
	}
	if *serial != "" {
		cfg.Serial = *serial
	}
	if *disableFlag {
		cfg.Enabled = false
	}
	cfg.LogCommand = cfg.LogCommand || *logCommandFlag || *disableFlag
	cfg.LogOutput = cfg.LogOutput || *logOutputFlag
	return cfg, nil
}

func selectTarget() {
	switch {
	case *transportID != "":
		client.SelectTarget(adb.DeviceTransport(*transportID))
	case *usbFlag:
		client.SelectTarget(adb.AnyUSBDevice)
	case *emulatorFlag:
		client.SelectTarget(adb.AnyLocalDevice)
	}
}

func run(command string) int {
	switch command {
	case "devices":
		return listDevices(*devicesLongFlag)
	case "shell":
		return report(client.Shell(strings.Join(*shellCommandArg, " ")))
	case "exec-out":
		return report(client.ExecOut(strings.Join(*execOutCommandArg, " ")))
	case "push":
		return report(client.Push(*pushLocalArg, *pushRemoteArg, flagOpt(*pushSyncFlag, "--sync")...))
	case "pull":
		return report(client.Pull(*pullRemoteArg, *pullLocalArg))
	case "install":
		return report(client.Install(*installPathArg, flagOpt(*installReplaceFlag, "-r")...))
	case "uninstall":
		return report(client.Uninstall(*uninstallNameArg, flagOpt(*uninstallKeepFlag, "-k")...))
	case "sync":
		return report(client.Sync(*syncPartitionArg))
	case "bugreport":
		return bugreport(*bugreportOutFlag, *bugreportProgressFlag)
	case "forward":
		return forward()
	case "reverse":
		return reverse()
	case "reboot":
		return report(client.Reboot(*rebootModeArg))
	case "emu":
		return report(client.Emu(*emuArgs...))
	case "get-serialno":
		return report(client.GetSerialNo())
	case "get-state":
		return report(client.GetState())
	case "start-server":
		return report(client.StartServer())
	case "kill-server":
		return report(client.KillServer())
	case "version":
		return report(client.Version())
	case "wait-for-device":
		return report(client.WaitForDevice())
	case "root":
		return report(client.Root())
	}
	kingpin.Usage()
	return 1
}

func flagOpt(set bool, opt string) []string {
	if set {
		return []string{opt}
	}
	return nil
}

// report prints the output of res and returns the exit code to use.
func report(res adb.Result, err error) int {
	if err != nil {
		return fail(err)
	}
	os.Stdout.Write(res.Output)
	return res.ExitCode
}

// fail prints err and returns the exit code to use. A disabled client is
// not a failure.
func fail(err error) int {
	if errors.Cause(err) == adb.ErrDisabled {
		return 0
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	return 1
}

func listDevices(long bool) int {
	if !long {
		return report(client.Devices())
	}
	devices, err := client.ListDevices()
	if err != nil {
		return fail(err)
	}

	for _, device := range devices {
		if !device.IsUSB() {
			fmt.Printf("%s\t%s product:%s model:%s device:%s\n",
				device.Serial, device.State, device.Product, device.Model, device.DeviceInfo)
		} else {
			fmt.Printf("%s\t%s usb:%s product:%s model:%s device:%s\n",
				device.Serial, device.State, device.USB, device.Product, device.Model, device.DeviceInfo)
		}
	}
	return 0
}

func forward() int {
	switch {
	case *forwardListFlag:
		fws, err := client.ForwardList()
		if err != nil {
			return fail(err)
		}
		for _, fw := range fws {
			fmt.Printf("%v %v %v\n", fw.Serial, fw.Local, fw.Remote)
		}
		return 0
	case *forwardRemoveAllFlag:
		return report(client.ForwardRemoveAll())
	}
	local, remote, err := parseSpecs(*forwardLocalArg, *forwardRemoteArg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return report(client.Forward(local, remote))
}

func reverse() int {
	if *reverseListFlag {
		rvs, err := client.ReverseList()
		if err != nil {
			return fail(err)
		}
		for _, rv := range rvs {
			fmt.Printf("%v %v %v\n", rv.Serial, rv.Local, rv.Remote)
		}
		return 0
	}
	remote, local, err := parseSpecs(*reverseRemoteArg, *reverseLocalArg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return report(client.Reverse(remote, local))
}

func parseSpecs(a, b string) (adb.ForwardSpec, adb.ForwardSpec, error) {
	first, err := adb.ParseForwardSpec(a)
	if err != nil {
		return "", "", err
	}
	second, err := adb.ParseForwardSpec(b)
	if err != nil {
		return "", "", err
	}
	return first, second, nil
}

// bugreport writes a bug report to outPath. adb bugreport waits forever
// when no device is attached, so the device is looked up first.
func bugreport(outPath string, showProgress bool) int {
	if client.Enabled() && !client.IsDeviceAvailable() {
		fmt.Fprintln(os.Stderr, "error: device not found")
		return 1
	}
	res, err := client.BugReport()
	if err != nil {
		return fail(err)
	}
	if !res.Success() {
		os.Stderr.Write(res.Output)
		return res.ExitCode
	}

	var out io.WriteCloser = os.Stdout
	if outPath != StdIoFilename {
		out, err = os.Create(outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening local file %s: %s\n", outPath, err)
			return 1
		}
	}
	defer out.Close()

	if err := copyWithProgressAndStats(out, bytes.NewReader(res.Output), len(res.Output), showProgress); err != nil {
		fmt.Fprintln(os.Stderr, "error writing bug report:", err)
		return 1
	}
	return 0
}

// copyWithProgressAndStats copies src to dst.
// If showProgress is true and size is positive, a progress bar is shown.
// After copying, final stats about the transfer speed and size are shown.
// Progress and stats are printed to stderr.
func copyWithProgressAndStats(dst io.Writer, src io.Reader, size int, showProgress bool) error {
	var progress *pb.ProgressBar
	if showProgress && size > 0 {
		progress = pb.New(size)
		// Write to stderr in case dst is stdout.
		progress.Output = os.Stderr
		progress.ShowSpeed = true
		progress.ShowPercent = true
		progress.ShowTimeLeft = true
		progress.SetUnits(pb.U_BYTES)
		progress.Start()
		dst = io.MultiWriter(dst, progress)
	}

	startTime := time.Now()
	copied, err := io.Copy(dst, src)

	if progress != nil {
		progress.Finish()
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok && errno == syscall.EPIPE {
			// Pipe closed. Handle this like an EOF.
			err = nil
		}
	}
	if err != nil {
		return err
	}

	duration := time.Since(startTime)
	rate := int64(float64(copied) / duration.Seconds())
	fmt.Fprintf(os.Stderr, "%d B/s (%d bytes in %s)\n", rate, copied, duration)

	return nil
}
