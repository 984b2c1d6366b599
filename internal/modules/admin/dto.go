package admin

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=renter owner admin"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type ReviewVehicleRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

type SetCommissionRateRequest struct {
	Rate float64 `json:"rate" binding:"required,gt=0,lte=1"`
}
