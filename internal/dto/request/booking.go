package request

type CreateBookingRequest struct {
	ShowID       string   `json:"show_id" validate:"required,uuid4"`
	SeatNumbers  []string `json:"seat_numbers" validate:"required,min=1,dive,required"`
	ContactEmail string   `json:"contact_email" validate:"required,email"`
	ContactPhone string   `json:"contact_phone" validate:"required"`
	TotalAmount  float64  `json:"total_amount" validate:"required,gt=0"`
	UserID       *string  `json:"user_id,omitempty"`
}
