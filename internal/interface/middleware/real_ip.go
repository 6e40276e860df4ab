package middleware

import (
	"github.com/gin-gonic/gin"
)

const CtxRealIP = "real_ip"

// TrustProxies sets which peers may report the client address. Forwarding
// headers are only honoured when the direct peer is one of proxies (IPs or
// CIDRs); with none, the TCP peer address is the client. cloudflare also
// accepts CF-Connecting-IP, and must only be enabled behind Cloudflare.
func TrustProxies(r *gin.Engine, proxies []string, cloudflare bool) error {
	if len(proxies) == 0 {
		proxies = nil
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		return err
	}
	if cloudflare {
		r.TrustedPlatform = gin.PlatformCloudflare
	}
	return nil
}

// RealIP stores the client IP resolved by gin under "real_ip".
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIP, c.ClientIP())
		c.Next()
	}
}
