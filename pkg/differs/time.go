// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Provides Comparers related to time
package differs

import (
	"time"

	"github.com/google/go-cmp/cmp"
)

// RFC3339Time allows any RFC3339 string to be matched against it when
// differs.Custom is passed to cmp. Archive tooling renders entry
// timestamps in this format.
func RFC3339Time() CustomComparer {
	return Customf(func(o interface{}) bool {
		if s, ok := o.(string); ok {
			_, err := time.Parse(time.RFC3339, s)
			return err == nil
		}
		return false
	})
}

// NonZeroTimes returns a cmp option under which any two non-zero
// time.Time values compare equal. Archive builders stamp entries with
// the time of the build, so listed entries carry timestamps a test
// cannot predict; comparing with this option checks that a timestamp
// was set without pinning its value.
func NonZeroTimes() cmp.Option {
	return cmp.Comparer(func(l, r time.Time) bool {
		if l.IsZero() || r.IsZero() {
			return l.Equal(r)
		}
		return true
	})
}
