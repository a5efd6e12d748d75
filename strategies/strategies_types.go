package strategies

import "errors"

// ErrStrategyNotFound occurs when a strategy name has no registered
// implementation
var ErrStrategyNotFound = errors.New("strategy not found")
