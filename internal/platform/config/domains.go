package config

// DatasetConfig holds the coverage dataset location and schema override.
type DatasetConfig struct {
	Path       string `env:"DATASET_PATH" envDefault:"cobertura_colombia_2017_2024_con_coords.csv"`
	SchemaPath string `env:"SCHEMA_PATH"`
}

// HTTPConfig holds dashboard server settings.
type HTTPConfig struct {
	Port               int      `env:"HTTP_PORT" envDefault:"8080"`
	HealthPort         int      `env:"HEALTH_PORT" envDefault:"8081"`
	RateLimitRPM       int      `env:"RATE_LIMIT_RPM" envDefault:"120"`
	RateLimitBurst     int      `env:"RATE_LIMIT_BURST" envDefault:"40"`
	TrustProxyHeaders  bool     `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// ChartConfig holds chart image settings.
type ChartConfig struct {
	Width  int `env:"CHART_WIDTH" envDefault:"960"`
	Height int `env:"CHART_HEIGHT" envDefault:"480"`
}
