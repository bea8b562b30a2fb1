package engine

import "github.com/google/uuid"

// newRunID stamps one Execute call with an opaque correlation id for log
// lines, the same role Worker.ID plays in the teacher's slog calls. It is
// never written into the journal itself.
func newRunID() string {
	return uuid.New().String()
}
