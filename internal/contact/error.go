package contact

import "errors"

var (
	ErrInquiryNotFound    = errors.New("inquiry not found")
	ErrInvalidInquiry     = errors.New("invalid inquiry input")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrAlreadySubscribed  = errors.New("email already subscribed")
	ErrSubscriberNotFound = errors.New("subscriber not found")
)
