package main

type secrets struct {
	SentryDSN         string
	IPInfoAPIKey      string
	UserTokenSecret   string
	AdminUsername     string
	AdminPasswordHash string
	RedisPassword     string
	DBUser            string
	DBPassword        string
	HoneycombEnabled  bool
	HoneycombAPIKey   string
	OtelServiceName   string
}

func secretsFromEnv(getenv func(string) string) secrets {
	return secrets{
		SentryDSN:         getenv("SENTRY_DSN"),
		IPInfoAPIKey:      getenv("IP_INFO_API_KEY"),
		UserTokenSecret:   getenv("FITHUB_JWT_SECRET"),
		AdminUsername:     getenv("FITHUB_ADMIN_USERNAME"),
		AdminPasswordHash: getenv("FITHUB_ADMIN_PASSWORD_HASH"),
		RedisPassword:     getenv("FITHUB_REDIS_PASS"),
		DBUser:            getenv("FITHUB_DB_USER"),
		DBPassword:        getenv("FITHUB_DB_PASSWORD"),
		HoneycombEnabled:  getenv("HONEYCOMB_ENABLED") == "true",
		HoneycombAPIKey:   getenv("HONEYCOMB_API_KEY"),
		OtelServiceName:   getenv("OTEL_SERVICE_NAME"),
	}
}

// missingRequired lists the env vars the service refuses to start without.
func (s secrets) missingRequired() []string {
	var missing []string
	if s.UserTokenSecret == "" {
		missing = append(missing, "FITHUB_JWT_SECRET")
	}
	return missing
}

// missingOptional lists env vars whose absence degrades a feature.
func (s secrets) missingOptional() []string {
	var missing []string
	if s.IPInfoAPIKey == "" {
		missing = append(missing, "IP_INFO_API_KEY")
	}
	if s.AdminUsername == "" || s.AdminPasswordHash == "" {
		missing = append(missing, "FITHUB_ADMIN_USERNAME", "FITHUB_ADMIN_PASSWORD_HASH")
	}
	if s.RedisPassword == "" {
		missing = append(missing, "FITHUB_REDIS_PASS")
	}
	if s.OtelServiceName == "" {
		missing = append(missing, "OTEL_SERVICE_NAME")
	}
	if s.HoneycombEnabled && s.HoneycombAPIKey == "" {
		missing = append(missing, "HONEYCOMB_API_KEY")
	}
	return missing
}
