package auth0

// CheckPermission enforces that the verified claims carry the required
// permission. A missing permissions claim usually means the identity
// provider client was configured without scopes, so it is reported with
// its own code rather than a plain permission miss. Matching is exact and
// case-sensitive.
func CheckPermission(claims *Claims, required string) error {
	if !claims.HasPermissionsClaim() {
		return NewError(CodeUnauthorized, "permissions not included in token")
	}

	for _, p := range claims.Permissions {
		if p == required {
			return nil
		}
	}

	return NewError(CodeForbidden, "permission not found")
}
