package config

// DefaultConfigYAML 内置默认配置
// 可被外部 config.yaml 或 EXPENSOR_* 环境变量覆盖
var DefaultConfigYAML = []byte(`server:
  port: ":8080"
  mode: "debug"
  base_url: ""

database:
  driver: "sqlite"
  path: "expensor.db"
  host: "127.0.0.1"
  port: "3306"
  username: "root"
  password: ""
  dbname: "expensor"
  charset: "utf8mb4"

jwt:
  secret: "change-me-in-production"
  expire_hours: 168

telegram:
  bot_token: ""
  bot_username: ""
  init_data_expire_hours: 24

stripe:
  enabled: false
  secret_key: ""
  webhook_secret: ""
  currency: "eur"
`)
