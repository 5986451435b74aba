package importer

import (
	"io"

	"github.com/MrJamesThe3rd/shopsight/internal/importer/salescsv"
	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

type Service struct {
	csvParser Parser
}

func NewService() *Service {
	return &Service{
		csvParser: salescsv.NewParser(),
	}
}

// Import parses an uploaded CSV into sale params. Nothing is persisted here;
// callers append the results through the record service.
func (s *Service) Import(r io.Reader) ([]record.SaleParams, error) {
	return s.csvParser.Parse(r)
}
