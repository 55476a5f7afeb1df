package domain

// Actor identifies who performed a mutation and from where. It feeds audit
// fields and the activity log.
type Actor struct {
	UserID    string
	Username  string
	IPAddress string
	UserAgent string
}

// SystemActor is used for startup seeding and CLI imports.
var SystemActor = Actor{UserID: SystemUserID, Username: SystemUsername}
