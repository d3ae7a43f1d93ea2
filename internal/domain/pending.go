package domain

// PendingRegistration holds a registration that has been submitted but not
// yet confirmed by email code. It lives only in server-side session state;
// the password is hashed before the record is created.
type PendingRegistration struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}
