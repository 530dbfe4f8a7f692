package merger

import (
	"fmt"
	"strings"
)

// BookmarkVerificationError reports a merged output whose bookmark tree
// does not match what the sources promised.
type BookmarkVerificationError struct {
	Expected int
	Actual   int
}

func (e *BookmarkVerificationError) Error() string {
	return fmt.Sprintf("bookmark verification failed: expected %d bookmarks, found %d", e.Expected, e.Actual)
}

// TierFailure records one exhausted strategy.
type TierFailure struct {
	Tier Tier
	Err  error
}

// MergeError is returned when every strategy, including the terminal
// fallback, has failed. It carries a diagnosis instead of a bare cause.
type MergeError struct {
	Attempts    []TierFailure
	Suspects    []string // source files with unreadable structure
	Remediation string
}

func (e *MergeError) Error() string {
	var b strings.Builder
	b.WriteString("merge failed at every tier")
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, "; %s: %v", a.Tier, a.Err)
	}
	if len(e.Suspects) > 0 {
		fmt.Fprintf(&b, "; suspect files: %s", strings.Join(e.Suspects, ", "))
	}
	if e.Remediation != "" {
		fmt.Fprintf(&b, "; %s", e.Remediation)
	}
	return b.String()
}

func (e *MergeError) Unwrap() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Err
}
