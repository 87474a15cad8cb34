package port

import "time"

// Clock отдаёт текущее время для замеров.
type Clock interface {
	Now() time.Time
}
