package formatter

import (
	"io"

	"github.com/bytedance/sonic"
)

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

func (f *JSONFormatter) encode(v any) error {
	encoder := sonic.ConfigStd.NewEncoder(f.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *JSONFormatter) FormatReport(data ReportData) error {
	return f.encode(data)
}

func (f *JSONFormatter) FormatArchives(data ArchiveListing) error {
	return f.encode(data)
}
