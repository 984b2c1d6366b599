package catalog

type CreateVehicleRequest struct {
	Make        string  `json:"make" binding:"required"`
	Model       string  `json:"model" binding:"required"`
	Year        int     `json:"year" binding:"required,gte=1980"`
	PlateNumber string  `json:"plate_number" binding:"required"`
	Description string  `json:"description"`
	PricePerDay float64 `json:"price_per_day" binding:"required,gt=0"`
	Location    string  `json:"location" binding:"required"`
}

type UpdateVehicleRequest struct {
	Description string  `json:"description"`
	PricePerDay float64 `json:"price_per_day" binding:"omitempty,gt=0"`
	Location    string  `json:"location"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available inactive maintenance"`
}

type ScheduleMaintenanceRequest struct {
	Description string `json:"description"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
}
