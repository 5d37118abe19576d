package adb

import (
	"regexp"
)

var whitespaceRegex = regexp.MustCompile(`^\s*$`)

func isBlank(str string) bool {
	return whitespaceRegex.MatchString(str)
}

// deviceNotFoundPattern matches the messages adb prints when no matching
// device is attached.
//
// Old servers say "device not found", newer ones "device 'serial' not found"
// or "no devices/emulators found".
var deviceNotFoundPattern = regexp.MustCompile(`device( '.*')? not found|no devices/emulators found`)

// joinArgs returns opts followed by args in a new slice.
func joinArgs(opts []string, args ...string) []string {
	out := make([]string, 0, len(opts)+len(args))
	out = append(out, opts...)
	return append(out, args...)
}
