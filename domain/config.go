package domain

const (
	DevEnv = "dev"
	ProEnv = "pro"
)

const (
	DriverMongo    = "mongodb"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Environment string `yaml:"environment"`
	Address     string `yaml:"address"`
	DBDriver    string `yaml:"db_driver"`
	DBURL       string `yaml:"db_url"`
	DBName      string `yaml:"db_name"`
	PageTitle   string `yaml:"page_title"`
	TLSHost     string `yaml:"tls_host"`
	CertCache   string `yaml:"cert_cache"`
}

func (c Config) IsDev() bool {
	return c.Environment == DevEnv
}
