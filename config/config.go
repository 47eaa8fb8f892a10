package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App      *App      `json:"app" yaml:"app"`
	Server   *Server   `json:"server" yaml:"server"`
	Database *Database `json:"database" yaml:"database"`
	Redis    *Redis    `json:"redis" yaml:"redis"`
	Jwt      *Jwt      `json:"jwt" yaml:"jwt"`
	Storage  *Storage  `json:"storage" yaml:"storage"`
	Fortune  *Fortune  `json:"fortune" yaml:"fortune"`
	Upload   *Upload   `json:"upload" yaml:"upload"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
	// AllowOrigins 跨域白名单，为空表示不限制
	AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
}

func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("解析 %s 错误: %v", filename, err))
	}
	return conf
}

// Parse 解析 yaml 内容并补全默认值
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}
	conf.withDefaults()
	return &conf, nil
}

func (c *Config) withDefaults() {
	if c.App == nil {
		c.App = &App{Env: "dev"}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Database == nil {
		c.Database = &Database{Driver: DriverSqlite, Database: "scribe.db"}
	}
	if c.Redis == nil {
		c.Redis = &Redis{Address: "127.0.0.1", Port: 6379}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Jwt.ExpiresTime == 0 {
		c.Jwt.ExpiresTime = 7 * 24 * 3600
	}
	if c.Storage == nil {
		c.Storage = &Storage{Driver: StorageMinio, Bucket: "message-images"}
	}
	if c.Fortune == nil {
		c.Fortune = &Fortune{}
	}
	if c.Fortune.Timezone == "" {
		c.Fortune.Timezone = "Asia/Shanghai"
	}
	if c.Fortune.CutoffHour == 0 {
		c.Fortune.CutoffHour = 4
	}
	if c.Upload == nil {
		c.Upload = &Upload{}
	}
	if c.Upload.MessageImageMaxSize == 0 {
		c.Upload.MessageImageMaxSize = 5 << 20
	}
	if c.Upload.DocumentMaxSize == 0 {
		c.Upload.DocumentMaxSize = 1 << 20
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
