package log

// Level mirrors logrus severity ordering: lower values are more severe.
type Level uint32

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

var disabled = false

// Disable turns off all logging, whatever the module or level.
func Disable() {
	disabled = true
}
