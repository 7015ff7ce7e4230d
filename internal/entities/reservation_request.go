package entities

// ReservationRequest is the guest form posted to /make-reservation.
type ReservationRequest struct {
	FirstName string `form:"first_name" validate:"required,min=3"`
	LastName  string `form:"last_name" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
	Phone     string `form:"phone" validate:"omitempty,max=32"`
}

// UpdateReservationRequest is the admin edit of guest details.
type UpdateReservationRequest struct {
	FirstName string `json:"first_name" validate:"required,min=3"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
}
