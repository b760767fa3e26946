// Identifiers default their uid through Generate when the caller does not
// supply one, so callers can always pass an empty string and get a fresh
// identity:
//
//	id := identifier.New("sub", "")
//	id.UID() // 32 lowercase hex characters
package identifier
