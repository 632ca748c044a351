package config

// defaults returns the built-in configuration, keyed by koanf path.
//
// Anything here can be overridden through the environment; nested values
// win key by key, so overriding database.host keeps the default port.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env": "local",

		"server.port":                 "9000",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"http://localhost:9000"},
		"server.auth_rate_limit":      5.0,
		"server.static_dir":           "static",

		"database.host":               "127.0.0.1",
		"database.port":               5432,
		"database.user":               "www-data",
		"database.password":           "www-data",
		"database.name":               "awesome",
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     1,
		"database.conn_max_lifetime":  3600,
		"database.conn_max_idle_time": 300,

		"redis.address": "127.0.0.1:6379",

		"auth.secret_key":  DefaultSecretKey,
		"auth.session_ttl": "24h",
		"auth.cookie_name": "awesession",

		"integration.email_from": "Awesome Blog <onboarding@resend.dev>",

		"observability.service_name":                          ServiceName,
		"observability.environment":                           "local",
		"observability.logging.level":                         "info",
		"observability.logging.format":                        "console",
		"observability.logging.slow_query_threshold":          "100ms",
		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
		"observability.health_checks.enabled":                 true,
		"observability.health_checks.interval":                "30s",
		"observability.health_checks.timeout":                 "5s",
		"observability.health_checks.checks":                  []string{"database", "redis"},
	}
}
