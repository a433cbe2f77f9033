package user

// User is the users/{uid} document. UID comes from the auth provider.
// LastUpdatedDate is the date through which rollover processing of this
// user's habits is known complete; it is written at sign-up and then only
// by the session date gate.
type User struct {
	UID             string `json:"uid" firestore:"uid"`
	Name            string `json:"name" firestore:"name"`
	LastUpdatedDate string `json:"lastUpdatedDate" firestore:"lastUpdatedDate"`
}
