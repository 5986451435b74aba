package importer

import (
	"io"

	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

// Parser turns an uploaded sales file into sale params ready for appending.
type Parser interface {
	Parse(r io.Reader) ([]record.SaleParams, error)
}
