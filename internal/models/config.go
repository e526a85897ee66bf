package models

type Config struct {
	Database DatabaseConfig `json:"database" mapstructure:"database"`
	Schema   SchemaConfig   `json:"schema" mapstructure:"schema"`
}

type DatabaseConfig struct {
	DBType           string `json:"db_type" mapstructure:"db_type" validate:"required,oneof=sqlite postgres mysql"`
	ConnectionString string `json:"connection_string" mapstructure:"connection_string" validate:"required"`
}

// SchemaConfig controls the physical table names. An empty prefix keeps the
// bare entity names.
type SchemaConfig struct {
	Prefix string `json:"prefix" mapstructure:"prefix" validate:"omitempty,max=24"`
}
