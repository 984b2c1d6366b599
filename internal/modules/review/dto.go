package review

type CreateReviewRequest struct {
	BookingID int64    `json:"booking_id" binding:"required"`
	Rating    int      `json:"rating" binding:"required"`
	Comment   string   `json:"comment"`
	ImageURLs []string `json:"image_urls"`
}
