package content

import "errors"

var (
	ErrSectionNotFound = errors.New("content section not found")
	ErrInvalidPayload  = errors.New("invalid content payload")
	ErrStoryNotFound   = errors.New("story not found")
	ErrInvalidStory    = errors.New("invalid story input")
)
