package models

// Owned is implemented by every record that has a single owning user. It is
// the hook for the generic write-authorization check in the service layer.
type Owned interface {
	OwnerUserID() uint
}
