package models

// User represents the canonical identity entity. Users never get deleted;
// VerificationScore is a cache of the derived trust score, refreshed whenever
// sales or ratings change.
type User struct {
	Meta
	Username          string  `json:"username"`
	Email             string  `json:"email"`
	PasswordHash      string  `json:"-"`
	IsVerified        bool    `json:"is_verified"`
	VerificationScore int     `json:"verification_score"`
	TotalSales        int     `json:"total_sales"`
	AverageRating     float64 `json:"average_rating"`
	RatingCount       int     `json:"-"`
}
