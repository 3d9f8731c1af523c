package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Table tabla de salida lista para serializar (XLSX, CSV o PDF).
// Name se usa como nombre de hoja o sufijo del archivo.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// ExportFile archivo generado por una exportación.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
