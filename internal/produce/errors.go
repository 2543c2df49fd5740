// Package produce ranks recipes against a perishable inventory, weighting how
// soon each matched item expires.
package produce

import "github.com/pageza/harvestplan/backend/internal/apperr"

// ErrInvalidInput is apperr.ErrInvalidInput, re-exported for callers that
// only import this package.
var ErrInvalidInput = apperr.ErrInvalidInput
