package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	CORSOrigins   []string      `yaml:"cors_origins"`
	Payment       PaymentConfig `yaml:"payment"`
	LLM           LLMConfig     `yaml:"llm"`
}

// PaymentConfig describes the posting fee and the chain it is paid on. A
// zero Amount disables the payment gate (free postings).
type PaymentConfig struct {
	Amount      float64 `yaml:"amount"`
	Currency    string  `yaml:"currency"`
	Network     string  `yaml:"network"`
	AdminWallet string  `yaml:"admin_wallet"`
	ChainRPCURL string  `yaml:"chain_rpc_url"`
}

type LLMConfig struct {
	BaseURL                 string        `yaml:"base_url"`
	Model                   string        `yaml:"model"`
	Timeout                 time.Duration `yaml:"timeout"`
	Retries                 int           `yaml:"retries"`
	Backoff                 time.Duration `yaml:"backoff"`
	CircuitFailureThreshold int           `yaml:"circuit_failure_threshold"`
	CircuitReset            time.Duration `yaml:"circuit_reset"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("DEVHIRE_ADDR", ":8080"),
		JWTSecret:     getEnv("DEVHIRE_JWT_SECRET", "supersecretkey"),
		APITimeout:    30 * time.Second,
		DatabasePath:  getEnv("DEVHIRE_DATABASE_PATH", "devhire.db"),
		TokenDuration: 7 * 24 * time.Hour,
		CORSOrigins:   splitList(getEnv("DEVHIRE_CORS_ORIGINS", "")),
		Payment: PaymentConfig{
			Amount:      getEnvFloat("DEVHIRE_PAYMENT_AMOUNT", 0.001),
			Currency:    getEnv("DEVHIRE_PAYMENT_CURRENCY", "ETH"),
			Network:     getEnv("DEVHIRE_PAYMENT_NETWORK", "Sepolia Testnet"),
			AdminWallet: getEnv("DEVHIRE_ADMIN_WALLET", ""),
			ChainRPCURL: getEnv("DEVHIRE_CHAIN_RPC_URL", ""),
		},
		LLM: LLMConfig{
			BaseURL:                 getEnv("DEVHIRE_LLM_BASE_URL", "http://localhost:11434"),
			Model:                   getEnv("DEVHIRE_LLM_MODEL", "llama3"),
			Timeout:                 20 * time.Second,
			Retries:                 2,
			Backoff:                 500 * time.Millisecond,
			CircuitFailureThreshold: 5,
			CircuitReset:            30 * time.Second,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}

	return def
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
