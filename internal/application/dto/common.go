package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SchemaErrorResponse cuerpo de error cuando la hoja de stock no trae las columnas requeridas.
type SchemaErrorResponse struct {
	Code           string   `json:"code"`
	Message        string   `json:"message"`
	MissingColumns []string `json:"missing_columns"`
}
