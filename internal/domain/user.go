package domain

// User is the authenticated user's profile as the auth service returns it.
type User struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	MobilePhone  string `json:"mobilePhone"`
	Eircode      string `json:"eircode"`
}
