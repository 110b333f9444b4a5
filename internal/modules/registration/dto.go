package registration

// RegisterRequest is the single inbound payload of the onboarding endpoint.
// For role=company_admin CompanyCode carries the master provisioning code;
// for the other roles it is the optional public join code.
type RegisterRequest struct {
	Name        string   `json:"name" binding:"required"`
	Phone       string   `json:"phone" binding:"required"`
	Password    string   `json:"password" binding:"required,min=6"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	CompanyCode string   `json:"companyCode"`
	Role        string   `json:"role" binding:"required"`
}

type RegisteredUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}
