package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Edmartinezzz/insulaguaira-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ipEntry tracks request counts per IP within a sliding window.
type ipEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	loginMap   = make(map[string]*ipEntry)
	loginMapMu sync.Mutex

	agendarMap   = make(map[string]*ipEntry)
	agendarMapMu sync.Mutex
)

func take(m map[string]*ipEntry, mu *sync.Mutex, ip string, limit int, window time.Duration) bool {
	mu.Lock()
	entry, exists := m[ip]
	if !exists {
		entry = &ipEntry{}
		m[ip] = entry
	}
	mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.After(entry.windowEnd) {
		entry.count = 0
		entry.windowEnd = now.Add(window)
	}
	entry.count++
	return entry.count <= limit
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !take(loginMap, &loginMapMu, c.ClientIP(), 20, time.Minute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// AgendarRateLimiter slows down scripted ticket grabbing. The cap is generous
// enough that a shared kiosk serving a queue of clients never hits it.
func AgendarRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !take(agendarMap, &agendarMapMu, c.ClientIP(), 60, time.Minute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes de agendamiento. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// Expired entries are purged periodically so IPs that never return do not
// accumulate in the maps.

const purgeInterval = 5 * time.Minute

func init() {
	go purgeExpiredEntries()
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purged := 0
		for _, pair := range []struct {
			m  map[string]*ipEntry
			mu *sync.Mutex
		}{
			{loginMap, &loginMapMu},
			{agendarMap, &agendarMapMu},
		} {
			pair.mu.Lock()
			for ip, entry := range pair.m {
				entry.mu.Lock()
				if now.After(entry.windowEnd) {
					delete(pair.m, ip)
					purged++
				}
				entry.mu.Unlock()
			}
			pair.mu.Unlock()
		}
		if purged > 0 {
			log.Debug().Int("entries_purged", purged).Msg("rate limiter maps purged")
		}
	}
}
