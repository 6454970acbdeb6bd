package endpoint

import "fmt"

// Credentials identify the process behind a unix socket
type Credentials struct {
	PID int
	UID int
	GID int
}

func (c Credentials) String() string {
	return fmt.Sprintf("pid=%d uid=%d gid=%d", c.PID, c.UID, c.GID)
}
