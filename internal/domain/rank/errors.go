package rank

import "errors"

// ErrInvalidRank is returned when a rating is outside [1, 10] or carries
// more than two decimal places.
var ErrInvalidRank = errors.New("rank must be between 1 and 10 with at most 2 decimal places")
