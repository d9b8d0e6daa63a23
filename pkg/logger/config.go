package logger

// Config 日志配置
type Config struct {
	Level       string `yaml:"level"`       // debug / info / warn / error
	Format      string `yaml:"format"`      // json 或 console
	Development bool   `yaml:"development"` // 开发模式：彩色级别、调用栈更详细
}

// DefaultConfig 返回生产环境默认配置
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "json",
		Development: false,
	}
}

// DevelopmentConfig 返回开发环境配置
func DevelopmentConfig() Config {
	return Config{
		Level:       "debug",
		Format:      "console",
		Development: true,
	}
}
