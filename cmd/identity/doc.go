// Package identity defines tradebid's canonical security principal and the
// storage boundary used by every authentication path.
//
// User records are snapshot reads: this package never mutates them. Writes
// (registration, password changes) belong to the account service and are
// out of scope here.
package identity
