package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"trackbench/internal/domain/entity"
)

type Config struct {
	LogMode     string         `yaml:"log_mode"`
	Display     DisplayConfig  `yaml:"display"`
	Selector    SelectorConfig `yaml:"selector"`
	GroundTruth string         `yaml:"ground_truth"` // файл эталонной разметки для runner
	Metrics     MetricsConfig  `yaml:"metrics"`
	Telegram    TelegramConfig `yaml:"telegram"`
	Trackers    TrackersConfig `yaml:"trackers"`

	// Correction применяется к каждому кадру до выбора области и трекинга
	Correction entity.Correction `yaml:"correction"`
}

type DisplayConfig struct {
	Headless       bool   `yaml:"headless"` // без окна, как при замерах времени
	TrackingWindow string `yaml:"tracking_window"`
	SelectWindow   string `yaml:"select_window"`
	WaitKeyMillis  int    `yaml:"wait_key_ms"`
	CancelKey      int    `yaml:"cancel_key"`
}

type SelectorConfig struct {
	SavePath string `yaml:"save_path"` // куда дописывать выбранный прямоугольник
}

type MetricsConfig struct {
	Addr           string    `yaml:"addr"` // адрес для /metrics, пусто - не поднимать
	LatencyBuckets []float64 `yaml:"latency_buckets"`
}

type TrackersConfig struct {
	GoturnDir string `yaml:"goturn_dir"` // goturn.prototxt и goturn.caffemodel, пусто - текущий каталог
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

// Default возвращает значения, совпадающие с поведением исходных скриптов.
func Default() *Config {
	return &Config{
		LogMode: "development",
		Display: DisplayConfig{
			TrackingWindow: "Tracking",
			SelectWindow:   "ROI selector",
			WaitKeyMillis:  1,
			CancelKey:      27,
		},
	}
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("TRACKBENCH_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv применяет переменные окружения поверх файла.
func applyEnv(cfg *Config) error {
	setString(&cfg.LogMode, "TRACKBENCH_LOG_MODE")
	setString(&cfg.GroundTruth, "TRACKBENCH_GROUND_TRUTH")
	setString(&cfg.Selector.SavePath, "TRACKBENCH_SAVE_BOX")
	setString(&cfg.Metrics.Addr, "TRACKBENCH_METRICS_ADDR")
	setString(&cfg.Telegram.Token, "TELEGRAM_TOKEN")
	setString(&cfg.Trackers.GoturnDir, "TRACKBENCH_GOTURN_DIR")

	for key, dst := range map[string]*float64{
		"TRACKBENCH_GAMMA":      &cfg.Correction.Gamma,
		"TRACKBENCH_CONTRAST":   &cfg.Correction.Contrast,
		"TRACKBENCH_BRIGHTNESS": &cfg.Correction.Brightness,
	} {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = f
		}
	}
	if cfg.Correction.Gamma < 0 || cfg.Correction.Contrast < 0 {
		return fmt.Errorf("correction: gamma and contrast must not be negative")
	}

	if v := os.Getenv("TRACKBENCH_HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRACKBENCH_HEADLESS: %w", err)
		}
		cfg.Display.Headless = b
	}
	if v := os.Getenv("TRACKBENCH_WAIT_KEY_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TRACKBENCH_WAIT_KEY_MS: %w", err)
		}
		cfg.Display.WaitKeyMillis = n
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.Telegram.ChatID = id
	}

	if cfg.Display.WaitKeyMillis < 1 {
		// 0 у OpenCV означает бесконечное ожидание
		cfg.Display.WaitKeyMillis = 1
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
