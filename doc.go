/*
Package adb drives the Android Debug Bridge (adb) executable.

Every operation of a Client is one blocking run of adb:

	adb [-s <serial>] <subcommand> <args...>

and yields a Result holding the exit code and the merged stdout/stderr of the
process. A nonzero exit code is not an error; the returned error is only set
when adb could not be started (ErrExecFailed, Result.ExitCode ExitExecFailed)
or when the client is disabled (ErrDisabled, Result.ExitCode ExitDisabled).

Arguments are passed to adb as an argument vector, never through a shell.

Some commands, e.g. reboot, root and install, may return before the device
has finished acting on them. Waiting for that is up to the caller, see
Client.WaitForDevice and Client.State.

The adb command line is documented at https://developer.android.com/tools/adb.
*/
package adb
