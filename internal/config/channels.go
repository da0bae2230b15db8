package config

import "time"

type SMTP struct {
	Host     string        `env:"SMTP_HOST,notEmpty"`
	Port     int           `env:"SMTP_PORT"          envDefault:"587"`
	Username string        `env:"SMTP_USERNAME"`
	Password string        `env:"SMTP_PASSWORD"      json:"-"`
	From     string        `env:"SMTP_FROM,notEmpty"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT"       envDefault:"10s"`
	Insecure bool          `env:"SMTP_INSECURE"`
}

// Twilio is optional: without an account SID buyers are reached by email only.
type Twilio struct {
	AccountSID string        `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string        `env:"TWILIO_AUTH_TOKEN"  json:"-"`
	From       string        `env:"TWILIO_FROM"`
	BaseURL    string        `env:"TWILIO_BASE_URL"`
	Timeout    time.Duration `env:"TWILIO_TIMEOUT"     envDefault:"10s"`
}

func (t Twilio) Enabled() bool {
	return t.AccountSID != ""
}

// Bot is the Telegram admin bot. ChatID receives alerts, AdminID may use
// the commands.
type Bot struct {
	Token   string `env:"BOT_TOKEN"    json:"-"`
	ChatID  int64  `env:"BOT_CHAT_ID"`
	AdminID int64  `env:"BOT_ADMIN_ID"`
}

func (b Bot) Enabled() bool {
	return b.Token != ""
}

type Kafka struct {
	Brokers []string `env:"KAFKA_BROKERS"  envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC"    envDefault:"billing.tier-changed"`
	GroupID string   `env:"KAFKA_GROUP_ID" envDefault:"dealflow"`
}

func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}
