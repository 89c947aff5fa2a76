package models

// Review is a rating left by one party of a booking for the other.
type Review struct {
	ReviewID    int       `json:"review_id"`
	BookingID   int       `json:"booking_id"`
	ReviewerID  int       `json:"reviewer_id"`
	ReviewedID  int       `json:"reviewed_id"`
	RatingScore float64   `json:"rating_score"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
	IsVerified  bool      `json:"is_verified"`
}

// ReviewInput is the body of POST /api/reviews.
type ReviewInput struct {
	BookingID   int     `json:"booking_id" validate:"required,gt=0"`
	ReviewedID  int     `json:"reviewed_id" validate:"required,gt=0"`
	RatingScore float64 `json:"rating_score" validate:"gte=1,lte=5"`
	Comment     string  `json:"comment,omitempty" validate:"max=1000"`
}

func (in ReviewInput) Validate() error { return validateStruct(in) }

// Message is a direct message between two users.
type Message struct {
	MessageID  int       `json:"message_id"`
	SenderID   int       `json:"sender_id"`
	ReceiverID int       `json:"receiver_id"`
	BookingID  *int      `json:"booking_id"`
	Content    string    `json:"content"`
	SentAt     Timestamp `json:"sent_at"`
	IsRead     bool      `json:"is_read"`
}

// MessageInput is the body of POST /api/messages.
type MessageInput struct {
	ReceiverID int    `json:"receiver_id" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required,min=1,max=2000"`
	BookingID  *int   `json:"booking_id,omitempty"`
}

func (in MessageInput) Validate() error { return validateStruct(in) }
