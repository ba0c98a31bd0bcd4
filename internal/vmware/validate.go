package vmware

import "github.com/dxbtools/admintools/internal/validate"

const hostNameLen = 13

// Exit statuses for rejected command lines.
const (
	CodeConflict  = 255
	CodeLength    = 254
	CodePrefix    = 253
	CodeRole      = 252
	CodeSequence  = 251
	CodeHostFound = 1
	CodeFailure   = 2
)

// ValidateHost checks a VM name given to -c and returns the data center
// that hosts it.
func ValidateHost(name string) validate.Result[string] {
	switch {
	case len(name) != hostNameLen:
		return validate.InvalidCode[string](CodeLength, "%s is not a valid hostname (length)", name)
	case name[0:2] != "dc":
		return validate.InvalidCode[string](CodePrefix, "%s is not a valid hostname (%s)", name, name[0:2])
	case name[4:6] != "xx":
		return validate.InvalidCode[string](CodeRole, "%s is not a valid hostname (%s)", name, name[4:6])
	case name[6:8] != "00":
		return validate.InvalidCode[string](CodeSequence, "%s is not a valid hostname (%s)", name, name[6:8])
	}
	if name[2] == '1' {
		return validate.Valid("DC1")
	}
	return validate.Valid("DC2")
}
