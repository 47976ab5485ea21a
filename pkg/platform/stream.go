package platform

import "github.com/go-drift/apppermission/pkg/errors"

// Stream delivers typed events from an EventChannel. Events the parser
// rejects are reported as parsing errors and dropped, so a malformed
// message never reaches the handler.
type Stream[T any] struct {
	channel *EventChannel
	op      string
	parse   func(data any) (T, error)
}

// NewStream wraps channel. op names the stream in error reports.
func NewStream[T any](op string, channel *EventChannel, parse func(data any) (T, error)) *Stream[T] {
	return &Stream[T]{channel: channel, op: op, parse: parse}
}

// Listen subscribes handler to parsed events. Stream errors are reported.
func (s *Stream[T]) Listen(handler func(T)) *Subscription {
	return s.channel.Listen(EventHandler{
		OnEvent: func(data any) {
			value, err := s.parse(data)
			if err != nil {
				errors.Report(&errors.Error{
					Op:      s.op + ".parse",
					Kind:    errors.KindParsing,
					Channel: s.channel.Name(),
					Err:     err,
				})
				return
			}
			handler(value)
		},
		OnError: func(err error) {
			errors.Report(&errors.Error{
				Op:      s.op,
				Kind:    errors.KindPlatform,
				Channel: s.channel.Name(),
				Err:     err,
			})
		},
	})
}
