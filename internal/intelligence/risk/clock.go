package risk

import (
	"time"

	"github.com/turtacn/warrify/internal/domain/warranty"
)

// Clock supplies the evaluation date. Scores depend on "today", so tests pin it.
type Clock interface {
	Today() warranty.Date
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Today() warranty.Date { return warranty.DateOf(time.Now()) }

// FixedClock always returns the same date.
type FixedClock warranty.Date

func (c FixedClock) Today() warranty.Date { return warranty.Date(c) }
