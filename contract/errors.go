package contract

import (
	"errors"
	"fmt"
)

// Registry names double as contract names and error namespaces.
const (
	RegistryIdentity      = "identity"
	RegistryOwnership     = "ownership"
	RegistryUsage         = "usage"
	RegistryAnonymization = "anonymization"
)

// ErrorKind is a stable symbolic error kind. Its numeric code depends on the
// registry that raises it.
type ErrorKind string

const (
	KindNotAuthorized      ErrorKind = "NotAuthorized"
	KindAlreadyInitialized ErrorKind = "AlreadyInitialized"
	KindInvalidArgument    ErrorKind = "InvalidArgument"
	KindAlreadyVerified    ErrorKind = "AlreadyVerified"
	KindNotFound           ErrorKind = "NotFound"
	KindNotOwner           ErrorKind = "NotOwner"
	KindPermissionNotFound ErrorKind = "PermissionNotFound"
	KindCategoryNotFound   ErrorKind = "CategoryNotFound"
	KindDatasetNotFound    ErrorKind = "DatasetNotFound"
)

// Codes shared by every registry.
var commonCodes = map[ErrorKind]uint32{
	KindNotAuthorized:      100,
	KindAlreadyInitialized: 110,
	KindInvalidArgument:    120,
}

// Per-registry codes. Each registry owns its numeric namespace.
var registryCodes = map[string]map[ErrorKind]uint32{
	RegistryIdentity: {
		KindAlreadyVerified: 101,
		KindNotFound:        102,
	},
	RegistryOwnership: {
		KindNotOwner:           101,
		KindPermissionNotFound: 102,
		KindDatasetNotFound:    103,
	},
	RegistryUsage: {
		KindNotFound:         101,
		KindCategoryNotFound: 102,
		KindDatasetNotFound:  103,
	},
	RegistryAnonymization: {
		KindNotFound:         101,
		KindCategoryNotFound: 102,
		KindDatasetNotFound:  103,
	},
}

// RegistryError is the typed result of a rejected registry operation.
// Fabric clients only see Error(), so the code is part of the message.
type RegistryError struct {
	Registry string
	Kind     ErrorKind
	Code     uint32
	Message  string
}

func (e *RegistryError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: [%d] %s", e.Registry, e.Code, e.Kind)
	}
	return fmt.Sprintf("%s: [%d] %s: %s", e.Registry, e.Code, e.Kind, e.Message)
}

// Is matches another *RegistryError with the same registry and kind, so
// errors.Is works against the sentinels returned by Sentinel.
func (e *RegistryError) Is(target error) bool {
	var t *RegistryError
	if !errors.As(target, &t) {
		return false
	}
	return e.Registry == t.Registry && e.Kind == t.Kind
}

// CodeFor returns the numeric code of kind within registry, or 0 when the
// registry does not define that kind.
func CodeFor(registry string, kind ErrorKind) uint32 {
	if code, ok := commonCodes[kind]; ok {
		return code
	}
	return registryCodes[registry][kind]
}

// Sentinel returns a message-less error usable as an errors.Is target.
func Sentinel(registry string, kind ErrorKind) error {
	return &RegistryError{Registry: registry, Kind: kind, Code: CodeFor(registry, kind)}
}

func newRegistryError(registry string, kind ErrorKind, format string, args ...interface{}) error {
	return &RegistryError{
		Registry: registry,
		Kind:     kind,
		Code:     CodeFor(registry, kind),
		Message:  fmt.Sprintf(format, args...),
	}
}

// HasKind reports whether err is (or wraps) a RegistryError of the given kind,
// regardless of registry.
func HasKind(err error, kind ErrorKind) bool {
	var re *RegistryError
	return errors.As(err, &re) && re.Kind == kind
}

// CodeOf extracts the numeric code from err, or 0 when err is not a RegistryError.
func CodeOf(err error) uint32 {
	var re *RegistryError
	if errors.As(err, &re) {
		return re.Code
	}
	return 0
}
