package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	Database Database `envPrefix:"DB_"`
	Paypal   Paypal   `envPrefix:"PAYPAL_"`
	JWT      JWT      `envPrefix:"JWT_"`
	SMTP     SMTP     `envPrefix:"SMTP_"`
}

type Paypal struct {
	BaseApiURL   string `env:"BASE_API_URL" envDefault:"https://api.sandbox.paypal.com"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

type Database struct {
	// MySQL DSN. When empty the server falls back to a local sqlite file,
	// which is what the dev setup uses.
	URL        string `env:"URL"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"artmarket.db"`
}

type JWT struct {
	Secret     string `env:"SECRET"`
	TTLMinutes int    `env:"TTL_MINUTES" envDefault:"60"`
}

type SMTP struct {
	Host     string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port     string `env:"PORT" envDefault:"587"`
	Username string `env:"USER"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
