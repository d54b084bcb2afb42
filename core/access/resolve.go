package access

// Resolve produces the effective permission set for a user: a non-empty stored
// override wins wholesale (never merged with role defaults), otherwise the
// matrix row for the role applies.
//
// Note: because the override check is "non-empty", an override deliberately
// narrowed to an empty map falls back to full role defaults rather than "no
// permissions". That all-or-nothing rule is intentional product behavior until
// clarified; see the empty-override scenario in resolve_test.go.
func Resolve(role Role, override Set) Set {
	if len(override) > 0 {
		return override.Clone()
	}
	return Defaults(role)
}
