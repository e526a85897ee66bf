package gui

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
)

const defaultSqliteFile = "pokedex.db"

func sqliteConnectionString(path string) string {
	return fmt.Sprintf("file:%s?cache=shared&_pragma=foreign_keys(1)", path)
}

// sqliteFile extracts the file name from a connection string built by
// sqliteConnectionString.
func sqliteFile(connectionString string) (string, bool) {
	if !strings.HasPrefix(connectionString, "file:") {
		return "", false
	}
	file, _, _ := strings.Cut(strings.TrimPrefix(connectionString, "file:"), "?")
	return file, file != ""
}

func postgresConnectionString(user, password, host string, port int, database string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, password),
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + database,
	}
	return u.String()
}

func mysqlConnectionString(user, password, host string, port int, database string) string {
	conf := mysql.NewConfig()
	conf.User = user
	conf.Passwd = password
	conf.Net = "tcp"
	conf.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	conf.DBName = database
	conf.ParseTime = true
	return conf.FormatDSN()
}

// connectionFields holds the values of the credential form.
type connectionFields struct {
	User     string
	Password string
	Host     string
	Port     string
	Database string
}

func parseConnectionFields(database, connectionString string) (connectionFields, bool) {
	switch database {
	case "postgres":
		conConf, err := pgx.ParseConfig(connectionString)
		if err != nil {
			return connectionFields{}, false
		}
		return connectionFields{
			User:     conConf.User,
			Password: conConf.Password,
			Host:     conConf.Host,
			Port:     strconv.FormatUint(uint64(conConf.Port), 10),
			Database: conConf.Database,
		}, true
	case "mysql":
		conConf, err := mysql.ParseDSN(connectionString)
		if err != nil {
			return connectionFields{}, false
		}
		host, port, err := net.SplitHostPort(conConf.Addr)
		if err != nil {
			return connectionFields{}, false
		}
		return connectionFields{
			User:     conConf.User,
			Password: conConf.Passwd,
			Host:     host,
			Port:     port,
			Database: conConf.DBName,
		}, true
	}
	return connectionFields{}, false
}

// describeConnection renders the confirmation text with the password masked.
func describeConnection(database, connectionString string) string {
	if database == "sqlite" {
		file, ok := sqliteFile(connectionString)
		if !ok {
			return "Failed to parse database connection string"
		}
		return fmt.Sprintf("Type: Sqlite\nFile: %s", file)
	}

	fields, ok := parseConnectionFields(database, connectionString)
	if !ok {
		return "Failed to parse database connection string"
	}

	name := "Postgres"
	if database == "mysql" {
		name = "Mysql"
	}
	return fmt.Sprintf(`Type: %s
User: %s, Password: %s
Host: %s, Port: %s
DB Name: %s
`, name, fields.User, strings.Repeat("*", len(fields.Password)), fields.Host, fields.Port, fields.Database)
}
