package native

import "time"

// Clock reports the real wall clock.
type Clock struct{}

func (Clock) Now() time.Time { return time.Now() }
