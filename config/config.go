package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Extract  ExtractConfig  `yaml:"extract"`
	Search   SearchConfig   `yaml:"search"`
	LLM      LLMConfig      `yaml:"llm"`
	Mongo    MongoConfig    `yaml:"mongo"`
	EventBus EventBusConfig `yaml:"eventbus"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// FetchConfig 는 페이지 수집(정적 HTTP / 헤드리스 브라우저) 관련 설정이다.
type FetchConfig struct {
	// Mode 는 static, dynamic, auto 중 하나다.
	Mode              string        `yaml:"mode"`
	UserAgent         string        `yaml:"user_agent"`
	StaticTimeout     time.Duration `yaml:"static_timeout"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	// SettleDelay 는 DOM 준비 이후 스크립트 렌더링을 기다리는 고정 시간이다.
	SettleDelay time.Duration `yaml:"settle_delay"`
	// ProbeDelay 는 하위 페이지 링크 클릭 후 기다리는 고정 시간이다.
	ProbeDelay time.Duration `yaml:"probe_delay"`
	// ChromePath 가 비어 있으면 CHROME_PATH 환경변수, 그 다음 chromedp 기본 탐색을 사용한다.
	ChromePath           string `yaml:"chrome_path"`
	PromoteBodyThreshold int    `yaml:"promote_body_threshold"`
	MaxBodyBytes         int64  `yaml:"max_body_bytes"`
}

// ExtractConfig 는 추출/분류 휴리스틱 상수다. 비어 있는 값은 기본값을 사용한다.
type ExtractConfig struct {
	MinLength             int      `yaml:"min_length"`
	MaxLength             int      `yaml:"max_length"`
	DenseThreshold        int      `yaml:"dense_threshold"`
	TableKeywordMin       int      `yaml:"table_keyword_min"`
	MinResultsBeforeProbe int      `yaml:"min_results_before_probe"`
	TableKeywords         []string `yaml:"table_keywords"`
	Blacklist             []string `yaml:"blacklist"`
	ProbePhrases          []string `yaml:"probe_phrases"`
	StripTags             []string `yaml:"strip_tags"`
}

// SearchConfig 는 기관명으로 데이터베이스 목록 페이지를 찾는 외부 검색 설정이다.
// API 키는 설정 파일이 아닌 SEARCH_API_KEY 환경변수로만 받는다.
type SearchConfig struct {
	Provider       string   `yaml:"provider"`
	APIURL         string   `yaml:"api_url"`
	Country        string   `yaml:"country"`
	Language       string   `yaml:"language"`
	QueryTemplates []string `yaml:"query_templates"`
	ResultLimit    int      `yaml:"result_limit"`

	// RequestsPerMinute 는 검색 API 호출의 분당 최대 요청 수이다. 0 이하면 제한 없음.
	RequestsPerMinute int `yaml:"requests_per_minute"`
	// RequestsPerDay 는 검색 API 호출의 일일 최대 요청 수이다. 0 이하면 제한 없음.
	RequestsPerDay int `yaml:"requests_per_day"`
}

type LLMConfig struct {
	ModelName string `yaml:"model_name"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type EventBusConfig struct {
	Brokers string `yaml:"brokers"`
	Topic   string `yaml:"topic"`
}

// Default returns a configuration that works without any config.yaml.
func Default() AppConfig {
	return AppConfig{
		Logging: LoggingConfig{Level: "info"},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Fetch: FetchConfig{
			Mode:                 "auto",
			UserAgent:            "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36",
			StaticTimeout:        10 * time.Second,
			NavigationTimeout:    30 * time.Second,
			SettleDelay:          3 * time.Second,
			ProbeDelay:           3 * time.Second,
			PromoteBodyThreshold: 2048,
			MaxBodyBytes:         8 << 20,
		},
		Extract: ExtractConfig{
			MinLength:             2,
			MaxLength:             60,
			DenseThreshold:        5,
			TableKeywordMin:       2,
			MinResultsBeforeProbe: 5,
		},
		Search: SearchConfig{
			Provider: "serpapi",
			Country:  "cn",
			Language: "zh-cn",
			QueryTemplates: []string{
				"%s 图书馆 数据库",
				"%s 图书馆 电子资源 数据库导航",
				"%s library databases",
			},
			ResultLimit:       5,
			RequestsPerMinute: 30,
		},
		LLM:   LLMConfig{ModelName: "gemini-2.5-flash"},
		Mongo: MongoConfig{Database: "libdb"},
		EventBus: EventBusConfig{
			Topic: "libdb-finder.analysis.events",
		},
	}
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	c, err := Load(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}
	applyEnv(&c)
	config = &c
}

// Load 는 주어진 경로의 yaml 을 기본값 위에 덮어써서 읽는다.
// 파일이 없으면 기본값을 그대로 반환한다.
func Load(path string) (AppConfig, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, err
	}
	return c, nil
}

// applyEnv 는 비밀값이 아닌 접속 정보 중 환경변수로 덮어쓸 수 있는 항목을 반영한다.
func applyEnv(c *AppConfig) {
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); v != "" {
		c.EventBus.Brokers = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" && c.Fetch.ChromePath == "" {
		c.Fetch.ChromePath = v
	}
	if v := os.Getenv("SEARCH_PROVIDER"); v != "" {
		c.Search.Provider = v
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// SearchAPIKey 는 검색 API 자격 증명이다. 비어 있으면 수동 URL 입력으로 대체한다.
func SearchAPIKey() string {
	return os.Getenv("SEARCH_API_KEY")
}

func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
