package bot

// The app is installable from the public marketplace, but it only ever
// responds on repositories owned by the two sponsoring organizations.
var allowedOwners = map[string]struct{}{
	"fairdataihub": {},
	"misanlab":     {},
}

// IsAllowedOwner reports whether the bot may act on repositories owned by
// ownerLogin. A false result is a deliberate no-op, not an error.
func IsAllowedOwner(ownerLogin string) bool {
	_, ok := allowedOwners[ownerLogin]
	return ok
}
