package html2pdf

import (
	"errors"

	"github.com/alnah/go-html2pdf/internal/geometry"
	"github.com/alnah/go-html2pdf/internal/imagecodec"
	"github.com/alnah/go-html2pdf/internal/paginate"
	"github.com/alnah/go-html2pdf/internal/raster"
)

// Sentinel errors for library operations.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrClosed         = errors.New("converter is closed")

	// ErrMissingSource is logged, not returned: a job without a source
	// renders one blank page.
	ErrMissingSource = errors.New("no source to convert")

	// Stage failures.
	ErrRenderFailure     = raster.ErrRenderFailure
	ErrPaginationFailure = paginate.ErrPaginationFailure

	// Configuration validation errors.
	ErrInvalidUnit        = geometry.ErrInvalidUnit
	ErrInvalidFormat      = geometry.ErrInvalidFormat
	ErrInvalidOrientation = geometry.ErrInvalidOrientation
	ErrInvalidMargin      = geometry.ErrInvalidMargin
	ErrInvalidImageType   = imagecodec.ErrInvalidImageType
	ErrInvalidEngine      = errors.New("invalid engine")
)
