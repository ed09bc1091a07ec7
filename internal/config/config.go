package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Convert ConvertConfig `toml:"convert"`
	Store   StoreConfig   `toml:"store"`
	Server  ServerConfig  `toml:"server"`
}

// ConvertConfig 提取批处理配置
type ConvertConfig struct {
	InputDir   string `toml:"input_dir"`
	OutputDir  string `toml:"output_dir"`
	OutlierDir string `toml:"outlier_dir"`
	// Workers 文件级并发度，1 为严格顺序处理
	Workers int `toml:"workers"`
}

// StoreConfig 入库与对象存储配置
type StoreConfig struct {
	DBPath    string `toml:"db_path"`
	BlobDir   string `toml:"blob_dir"`
	GCSBucket string `toml:"gcs_bucket"` // 非空时改用 GCS 上传
}

// ServerConfig 浏览服务配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Convert: ConvertConfig{
			InputDir:   "./raw_data",
			OutputDir:  "./processed_data",
			OutlierDir: "./outlier_files",
			Workers:    1,
		},
		Store: StoreConfig{
			DBPath:  "data/eq.db",
			BlobDir: "data/blobs",
		},
		Server: ServerConfig{
			Port:    20270,
			DevMode: false,
		},
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 从可执行文件同目录的 config.toml 加载配置
// 文件不存在时回落到默认配置
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := os.ReadFile(filepath.Join(exeDir, "config.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	// 环境变量覆盖（用于 E2E / 本地运行）
	if v := os.Getenv("STG_GCS_BUCKET"); v != "" {
		config.Store.GCSBucket = v
	}
	if v := os.Getenv("STG_DB_PATH"); v != "" {
		config.Store.DBPath = v
	}

	return config, nil
}
