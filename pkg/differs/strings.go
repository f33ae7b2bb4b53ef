package differs

import "strings"

// AnyString allows any string to be matched against it when
// differs.Custom is passed to cmp
func AnyString() CustomComparer {
	return Customf(func(o interface{}) bool {
		_, ok := o.(string)
		return ok
	})
}

// CaptureString matches any string the first time it is used but
// on later attempts the string has to match the first one exactly.
// Use it to check that an unpredictable value, such as a session
// identifier, is the same everywhere it appears.
func CaptureString() CustomComparer {
	var matched string
	seen := false
	return Customf(func(o interface{}) bool {
		s, ok := o.(string)
		if !seen && ok {
			seen, matched = true, s
		}
		return ok && matched == s
	})
}

// Contains matches any string that has the provided string as a
// substring
func Contains(ss string) CustomComparer {
	return Customf(func(o interface{}) bool {
		s, ok := o.(string)
		return ok && strings.Contains(s, ss)
	})
}
