package session

// Greeting is the payload returned by the session date gate after
// sign-in or app resume. DaysAway is zero unless a rollover ran.
type Greeting struct {
	Message    string `json:"message"`
	Mode       string `json:"mode"`
	Today      string `json:"today"`
	DaysAway   int    `json:"daysAway"`
	Reconciled bool   `json:"reconciled"`
}
