package dto

// SetPeriodRequest moves the submission period.
type SetPeriodRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}
