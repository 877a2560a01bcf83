package core

// ReaderConfig holds configuration for connecting a schema reader to a database.
type ReaderConfig struct {
	Type     string
	Path     string
	DSN      string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Schema   string
	Options  map[string]string
	Params   map[string]any
}
