package request

type PartySizeRequest struct {
	PartySize int `json:"partySize" binding:"required,min=1,max=99"`
}

type DateRequest struct {
	Date string `json:"date" binding:"required"`
}

type TimeRequest struct {
	Time string `json:"time" binding:"required"`
}

// ContactRequest carries the free-text fields as typed. Omitted fields keep
// their current value. Length and format are checked on submit so every
// violation is reported at once.
type ContactRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email" binding:"omitempty,email"`
}
