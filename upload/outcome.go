package upload

// Kind tells which member of an Outcome is populated.
type Kind string

const (
	KindSuccess   Kind = "success"
	KindRejected  Kind = "rejected"
	KindTransport Kind = "transport"
)

// Failure is a rejection the server answered with. Code is the HTTP status
// when the body carried no code of its own.
type Failure struct {
	StatusCode int
	Code       int
	Message    string
	RequestID  string
}

// Outcome is the result of one upload.
//
// KindSuccess populates Data, Code, Message and RequestID. KindRejected
// populates Failure. KindTransport populates Err, which is also returned as
// the error from Upload. Raw holds the response body when there was one.
type Outcome[T any] struct {
	Kind       Kind
	StatusCode int

	Data      T
	Code      int
	Message   string
	RequestID string

	Failure *Failure
	Err     error

	Raw []byte
}

func (o *Outcome[T]) Succeeded() bool {
	return o != nil && o.Kind == KindSuccess
}
