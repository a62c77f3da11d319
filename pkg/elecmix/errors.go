package elecmix

import (
	"errors"
	"fmt"

	"github.com/ukaji3/elecmix-go/pkg/elecmix/loader"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/models"
	"github.com/ukaji3/elecmix-go/pkg/elecmix/reshape"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = loader.ErrFileNotFound

// ErrMissingColumn indicates an expected column (identifier, year or country) is absent.
var ErrMissingColumn = models.ErrColumnNotFound

// ErrIndicatorNotFound indicates no row matched an indicator name.
var ErrIndicatorNotFound = reshape.ErrIndicatorNotFound

// ErrUnsupportedFormat indicates an output format that cannot be written.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ErrInvalidOptions indicates run options that cannot produce an image.
var ErrInvalidOptions = errors.New("invalid options")

// ErrDuplicateCountry indicates a country listed twice for one indicator.
var ErrDuplicateCountry = reshape.ErrDuplicateCountry

// ErrInvalidDefinition indicates a report definition that cannot be laid out.
var ErrInvalidDefinition = errors.New("invalid report definition")

// PanelError represents a failure while building one panel of the report.
type PanelError struct {
	Panel string
	Stage string // "reshape", "render"
	Err   error
}

func (e *PanelError) Error() string {
	return fmt.Sprintf("panel %q (%s): %v", e.Panel, e.Stage, e.Err)
}

func (e *PanelError) Unwrap() error {
	return e.Err
}

// NewPanelError creates a new PanelError.
func NewPanelError(panel, stage string, err error) *PanelError {
	return &PanelError{
		Panel: panel,
		Stage: stage,
		Err:   err,
	}
}
