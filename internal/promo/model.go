package promo

import "time"

type Promo struct {
	ID                 string
	Title              string
	Description        string
	Code               string
	DiscountPercentage *float64
	DiscountAmount     *float64
	Active             bool
	StartDate          *time.Time
	EndDate            *time.Time
	CreatedAt          time.Time
}
