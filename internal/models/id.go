package models

import "regexp"

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// ValidClientID reports whether id is safe to store and echo. Client ids end
// up inside Redis key names, so only letters, digits and dashes are allowed.
func ValidClientID(id string) bool {
	return clientIDPattern.MatchString(id)
}
