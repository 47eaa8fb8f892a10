package config

// Upload 上传限制，单位字节
type Upload struct {
	MessageImageMaxSize int64 `json:"message_image_max_size" yaml:"message_image_max_size"`
	DocumentMaxSize     int64 `json:"document_max_size" yaml:"document_max_size"`
}
