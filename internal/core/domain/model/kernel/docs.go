// Package kernel holds the identifier type shared by the order model.
//
// UUID wraps github.com/google/uuid. The zero value is not a valid identifier;
// build one with NewUUID or parse one with UUIDFromString, which reports text
// that is not a UUID as a malformed reference rather than a missing record.
package kernel
