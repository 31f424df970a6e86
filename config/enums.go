package config

// Specification of requested output type.
// ENUM(text, json, css)
type OutputFmt int

// Ext returns file extension for output written to file.
func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtJson:
		return ".json"
	case OutputFmtCss:
		return ".css"
	default:
		return ".txt"
	}
}
