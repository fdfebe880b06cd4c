// Package geoip resolves the timezone a request should be evaluated in.
package geoip

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ipinfo/go/v2/ipinfo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitnesshub/backend/internal/telemetry/tracing"
	"github.com/fitnesshub/backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=timezone_mocks_test.go -package=geoip_test

const (
	TimezoneHeader = "X-Timezone"

	ipTimezoneKeyPrefix = "ip-tz::"
	ipTimezoneCacheTTL  = 7 * 24 * time.Hour
	lookupTimeout       = 3 * time.Second
)

type ipInfoClient interface {
	GetIPInfo(ip net.IP) (*ipinfo.Core, error)
}

// NewIPInfoClient returns an ipinfo client with a traced transport. An empty
// token uses the anonymous quota.
func NewIPInfoClient(token string) *ipinfo.Client {
	httpClient := &http.Client{
		Timeout:   lookupTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	return ipinfo.NewClient(httpClient, nil, token)
}

// TimezoneResolver picks the caller's location from, in order: the
// X-Timezone header, the client IP (via ipinfo, cached in redis), and the
// configured default.
type TimezoneResolver struct {
	ipInfo      ipInfoClient
	redisClient *redis.Client
	fallback    *time.Location

	locations sync.Map // name -> *time.Location
}

func NewTimezoneResolver(ipInfo ipInfoClient, redisClient *redis.Client, fallback *time.Location) *TimezoneResolver {
	if fallback == nil {
		fallback = time.UTC
	}
	return &TimezoneResolver{
		ipInfo:      ipInfo,
		redisClient: redisClient,
		fallback:    fallback,
	}
}

func (tr *TimezoneResolver) Location(r *http.Request) *time.Location {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "geoIp.location")
	defer span.End()

	if name := r.Header.Get(TimezoneHeader); name != "" {
		if loc, ok := tr.load(name); ok {
			span.SetAttributes(attribute.String("tz.source", "header"))
			return loc
		}
		log.Tracef("ignoring invalid timezone header value: %q", name)
	}

	userIp, err := pkg.ReadUserIP(r)
	if err != nil || userIp == "localhost" || tr.ipInfo == nil {
		span.SetAttributes(attribute.String("tz.source", "default"))
		return tr.fallback
	}
	span.SetAttributes(attribute.String("user.ip", userIp))

	name, err := tr.ipTimezone(ctx, userIp)
	if err != nil {
		log.Errorf("resolve timezone of %s: %s", userIp, err)
		return tr.fallback
	}
	if loc, ok := tr.load(name); ok {
		span.SetAttributes(attribute.String("tz.source", "ip"))
		return loc
	}

	return tr.fallback
}

func (tr *TimezoneResolver) ipTimezone(ctx context.Context, userIp string) (string, error) {
	key := ipTimezoneKeyPrefix + userIp

	cached, err := tr.redisClient.Get(ctx, key).Result()
	switch {
	case err == nil && cached != "":
		log.Tracef("found timezone for [%s] in redis cache", userIp)
		return cached, nil
	case err != nil && err != redis.Nil:
		log.Errorf("failed to get ip timezone from redis for [%s]: %s", key, err)
	}

	info, err := tr.ipInfo.GetIPInfo(net.ParseIP(userIp))
	if err != nil {
		return "", fmt.Errorf("ipinfo lookup: %w", err)
	}
	if info == nil || info.Timezone == "" {
		return "", fmt.Errorf("ipinfo returned no timezone for %s", userIp)
	}

	if err := tr.redisClient.Set(ctx, key, info.Timezone, ipTimezoneCacheTTL).Err(); err != nil {
		log.Errorf("failed to cache ip timezone in redis for %s: %s", userIp, err)
	}

	return info.Timezone, nil
}

func (tr *TimezoneResolver) load(name string) (*time.Location, bool) {
	if loc, ok := tr.locations.Load(name); ok {
		return loc.(*time.Location), true
	}
	loc, err := time.LoadLocation(name)
	if err != nil || name == "" || name == "Local" {
		return nil, false
	}
	tr.locations.Store(name, loc)
	return loc, true
}
