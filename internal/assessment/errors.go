package assessment

// GenerationFailedMessage is the only failure text shown to learners.
const GenerationFailedMessage = "Failed to generate assessment. Please check your API key and try again."

// GenerationError is returned for any failure after the request was sent:
// transport, empty reply, unparseable JSON, wrong shape, or a rejected
// question. The cause is kept for logs and errors.As.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return GenerationFailedMessage
}

func (e *GenerationError) Unwrap() error { return e.Err }
