package models

type Flags struct {
	Mode   string `short:"m" long:"mode" env:"MODE" required:"true" description:"The mode pokemon-commons is running in: cli/docker" default:"cli"`
	Config string `short:"c" long:"config" env:"CONFIG" description:"Path to the configuration file" default:"config.json"`
	DryRun bool   `long:"dry-run" env:"DRY_RUN" description:"Print the schema DDL instead of applying it"`
}
