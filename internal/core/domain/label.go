package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// packageNameChars are the characters allowed in a package name segment.
const packageNameChars = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-._ "

// ValidatePackageName checks a package name for structural validity: no
// leading, trailing, or doubled slashes, no "." or ".." segments, and only
// the allowed character set. The empty name (the root package) is valid.
func ValidatePackageName(name string) error {
	if name == "" {
		return nil
	}
	if strings.HasPrefix(name, "/") {
		return zerr.With(ErrInvalidPackageName, "reason", "package names may not start with '/'")
	}
	if strings.HasSuffix(name, "/") {
		return zerr.With(ErrInvalidPackageName, "reason", "package names may not end with '/'")
	}
	for _, segment := range strings.Split(name, "/") {
		if segment == "" {
			return zerr.With(ErrInvalidPackageName, "reason", "package names may not contain '//'")
		}
		if segment == "." || segment == ".." {
			return zerr.With(ErrInvalidPackageName, "reason", "package names may not contain '.' or '..' segments")
		}
	}
	for _, r := range name {
		if r != '/' && !strings.ContainsRune(packageNameChars, r) {
			return zerr.With(ErrInvalidPackageName, "character", string(r))
		}
	}
	return nil
}
