package config

// Fortune 每日运势配置
type Fortune struct {
	Timezone   string `json:"timezone" yaml:"timezone"`
	CutoffHour int    `json:"cutoff_hour" yaml:"cutoff_hour"`
}

func ProvideFortuneConfig(cfg *Config) *Fortune {
	return cfg.Fortune
}
