package http

type ErrorResponse struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type DonationRequest struct {
	UserID  int64   `json:"userId"`
	Amount  int64   `json:"amount"`
	Message *string `json:"message"`
}

type DonationResponse struct {
	ID        int64   `json:"id"`
	StreamID  int64   `json:"streamId"`
	UserID    int64   `json:"userId"`
	Amount    int64   `json:"amount"`
	Message   *string `json:"message"`
	Timestamp string  `json:"timestamp"`
}
