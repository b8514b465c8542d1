package contracts

// WithStatusCode is implemented by responses and by errors that map to an
// http status.
type WithStatusCode interface {
	StatusCode() int
}

//ResponseContract is interface of http response
type ResponseContract interface {
	WithStatusCode
	Content() []byte
	Headers() map[string]string
	SetHeader(key string, value string) ResponseContract
	SetStatusCode(code int) ResponseContract
	// Handled reports that the body was already written to the transport.
	Handled() bool
}
