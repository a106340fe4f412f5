package errors

import "strings"

type multiErr struct {
	base   error
	causes []error
}

func (e *multiErr) Unwrap() []error {
	return e.causes
}

func (e *multiErr) Is(target error) bool {
	return e.base == target
}

func (e *multiErr) Error() string {
	msgs := make([]string, 0, len(e.causes))
	for _, c := range e.causes {
		msgs = append(msgs, c.Error())
	}
	return e.base.Error() + ": [" + strings.Join(msgs, "; ") + "]"
}

// Multi combines causes under base, nil causes are dropped. Returns nil when no cause is left.
func Multi(base error, causes ...error) error {
	kept := make([]error, 0, len(causes))
	for _, c := range causes {
		if c != nil {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return &multiErr{
		base:   base,
		causes: kept,
	}
}
