package settings

// Response is the wire shape of one tenant's widget configuration. Fields
// are snake_case to match the settings store columns; the widget applies its
// own defaults to any empty field.
type Response struct {
	PrimaryColor string `json:"primary_color"`
	BusinessName string `json:"business_name"`
	BusinessInfo string `json:"business_info"`
	SalesRepName string `json:"sales_rep_name"`
}

// UpsertRequest is the dashboard's write payload for one tenant's settings
type UpsertRequest struct {
	UID          string `json:"uid" binding:"required"`
	PrimaryColor string `json:"primary_color"`
	BusinessName string `json:"business_name"`
	BusinessInfo string `json:"business_info"`
	SalesRepName string `json:"sales_rep_name"`
}
