package logger

import (
	"fmt"
	"log"
	"os"
)

// Bootstrap returns a stderr logger for messages emitted before the structured
// logger is configured, such as config file fallbacks.
func Bootstrap(component string) *log.Logger {
	return log.New(os.Stderr, fmt.Sprintf("[%s] ", component), log.LstdFlags|log.LUTC)
}
