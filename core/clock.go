package core

import "time"

// Clock supplies the localized current instant. The machine never reads the
// wall clock directly so tests can inject fixed instants.
type Clock interface {
	Now() time.Time
}
