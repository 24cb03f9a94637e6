package model

// Viewer is the identity a read is performed for. The zero value is
// anonymous.
type Viewer struct {
	userID string
}

func Anonymous() Viewer {
	return Viewer{}
}

func Authenticated(userID string) Viewer {
	return Viewer{userID: userID}
}

func (v Viewer) UserID() (string, bool) {
	return v.userID, v.userID != ""
}

func (v Viewer) IsAnonymous() bool {
	return v.userID == ""
}

// Param is the query parameter form: nil for anonymous, which matches no
// User.
func (v Viewer) Param() any {
	if v.userID == "" {
		return nil
	}
	return v.userID
}
