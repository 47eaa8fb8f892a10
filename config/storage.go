package config

const (
	StorageOss   = "oss"
	StorageMinio = "minio"
)

// Storage 对象存储配置，私信图片存放于此
type Storage struct {
	Driver          string `json:"driver" yaml:"driver"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	Region          string `json:"region" yaml:"region"`
	Bucket          string `json:"bucket" yaml:"bucket"`
	AccessKeyID     string `json:"ak" yaml:"ak"`
	AccessKeySecret string `json:"sk" yaml:"sk"`
	UseSSL          bool   `json:"use_ssl" yaml:"use_ssl"`
	// PublicBaseURL 为空时返回临时签名地址
	PublicBaseURL string `json:"public_base_url" yaml:"public_base_url"`
}

func ProvideStorageConfig(cfg *Config) *Storage {
	return cfg.Storage
}
