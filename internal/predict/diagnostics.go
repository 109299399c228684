package predict

import "fmt"

// Sink receives diagnostics as they are recorded. *log.Logger satisfies it.
type Sink interface {
	Printf(format string, v ...any)
}

// Diagnostics describes what happened to the dataset during one call.
type Diagnostics struct {
	Loaded        int            `json:"loaded"`
	Matched       int            `json:"matched"`
	InWindow      int            `json:"in_window"`
	ParseFailures int            `json:"parse_failures"`
	LoadError     *DataLoadError `json:"-"`
	LoadFailure   string         `json:"load_error,omitempty"`
	Messages      []string       `json:"messages"`

	sink Sink
}

func (d *Diagnostics) addf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	d.Messages = append(d.Messages, msg)
	if d.sink != nil {
		d.sink.Printf("%s", msg)
	}
}
