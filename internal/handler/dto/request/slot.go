package request

type ManualReserveRequest struct {
	OrganizationName string `json:"organization_name" binding:"required"`
	Notes            string `json:"notes"`
}
