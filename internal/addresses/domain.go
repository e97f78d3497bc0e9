package addresses

// Address is the single delivery address attached to a user.
type Address struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"user_id"`
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}
