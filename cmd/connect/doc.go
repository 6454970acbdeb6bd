// Package connect implements the commands that resolve and open the display
// connection: "connect", "exec" and "env".
package connect
