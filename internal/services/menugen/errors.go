package menugen

// GeneratorError is a custom error type for generator errors
type GeneratorError string

// Error implements the error interface
func (e GeneratorError) Error() string {
	return string(e)
}

const (
	ErrNilConfig       GeneratorError = "config cannot be nil"
	ErrMissingAPIKey   GeneratorError = "API key cannot be empty"
	ErrEmptyResponse   GeneratorError = "model returned an empty response"
	ErrMalformedOutput GeneratorError = "model output is not a suggestion list"
)
