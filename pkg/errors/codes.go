package errors

// -----------------------------------------------------------------------------
// Definition Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrDefinitionParseFailed indicates the report definition could not be decoded.
	// Usually a YAML syntax error or a field of the wrong type.
	ErrDefinitionParseFailed = "DEFINITION_PARSE_FAILED"

	// ErrDefinitionInvalid indicates the definition violates its schema.
	ErrDefinitionInvalid = "DEFINITION_INVALID"
)

// -----------------------------------------------------------------------------
// Input Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrSourceNotFound indicates a task's program listing does not exist.
	ErrSourceNotFound = "SOURCE_NOT_FOUND"

	// ErrSourceReadFailed indicates a task's program listing exists but could not be read.
	ErrSourceReadFailed = "SOURCE_READ_FAILED"

	// ErrImageNotFound indicates a task's screenshot does not exist.
	ErrImageNotFound = "IMAGE_NOT_FOUND"

	// ErrImageDecodeFailed indicates a screenshot is unreadable or not a PNG, JPEG or GIF.
	ErrImageDecodeFailed = "IMAGE_DECODE_FAILED"
)

// -----------------------------------------------------------------------------
// Output Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrOutputDirFailed indicates the output directory could not be created.
	ErrOutputDirFailed = "OUTPUT_DIR_FAILED"

	// ErrOutputWriteFailed indicates the PDF could not be written or moved into place.
	ErrOutputWriteFailed = "OUTPUT_WRITE_FAILED"
)

// -----------------------------------------------------------------------------
// Rendering Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrLayoutOverflow indicates a block cannot fit on an empty page.
	ErrLayoutOverflow = "LAYOUT_OVERFLOW"

	// ErrRenderFailed indicates the PDF engine reported an error.
	ErrRenderFailed = "RENDER_FAILED"
)

// AllCodes returns every error code defined by this package.
func AllCodes() []string {
	return []string{
		ErrDefinitionParseFailed,
		ErrDefinitionInvalid,
		ErrSourceNotFound,
		ErrSourceReadFailed,
		ErrImageNotFound,
		ErrImageDecodeFailed,
		ErrOutputDirFailed,
		ErrOutputWriteFailed,
		ErrLayoutOverflow,
		ErrRenderFailed,
	}
}
