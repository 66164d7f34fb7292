package arch

import "strings"

// NumRegisters is the number of general-purpose registers the machine has.
const NumRegisters = 8

// IsRegister returns true if the given name represents a known register.
func IsRegister(name string) bool {
	return RegisterIndex(name) > -1
}

// RegisterIndex returns the index for the given register.
// Returns -1 if the name is not recognized.
func RegisterIndex(name string) int {
	switch strings.ToLower(name) {
	case "r0":
		return 0
	case "r1":
		return 1
	case "r2":
		return 2
	case "r3":
		return 3
	case "r4":
		return 4
	case "r5":
		return 5
	case "r6":
		return 6
	case "r7":
		return 7
	}
	return -1
}

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	if n < 0 || n >= NumRegisters {
		return ""
	}
	return "r" + string(rune('0'+n))
}
