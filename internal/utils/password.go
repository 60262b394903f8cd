package utils

import "strings"

// The credential transform is deliberately reversible: authenticate has to
// recover the plaintext from the stored value, so this is string splicing,
// not hashing. Encoded form: marker + password characters joined with the
// record's internal id + marker. The scheme breaks down if the id contains
// the marker or collides with password characters; ids are uuids here, which
// keeps both out of reach in practice.

// EncodePassword interleaves the password's characters with userID and wraps
// the result in the shared marker.
func EncodePassword(password, userID, marker string) string {
	return marker + strings.Join(strings.Split(password, ""), userID) + marker
}

// DecodePassword reverses EncodePassword: it takes the segment after the
// first marker occurrence and strips every embedded occurrence of userID.
// Input that does not contain the marker decodes to the empty string.
func DecodePassword(stored, userID, marker string) string {
	parts := strings.Split(stored, marker)
	if len(parts) < 2 {
		return ""
	}
	return strings.ReplaceAll(parts[1], userID, "")
}
