package importer

import (
	"io"

	"github.com/MrJamesThe3rd/rkap/internal/transaction"
)

type Service struct {
	parsers map[Format]Parser
}

func NewService() *Service {
	return &Service{
		parsers: map[Format]Parser{
			FormatCSV:  NewCSVParser(),
			FormatXLSX: NewXLSXParser(),
		},
	}
}

func (s *Service) Parse(format Format, r io.Reader) ([]transaction.ImportRow, error) {
	p, ok := s.parsers[format]
	if !ok {
		return nil, ErrUnknownFormat
	}

	return p.Parse(r)
}
