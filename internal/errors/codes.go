package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeConfiguration   Code = "CONFIGURATION"
	CodeFilesystem      Code = "FILESYSTEM"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeOutOfRange      Code = "OUT_OF_RANGE"
	CodeCanceled        Code = "CANCELED"
	CodeInternal        Code = "INTERNAL"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

