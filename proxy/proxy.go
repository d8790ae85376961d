// proxy.go

package proxy

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"

	"github.com/deploymenttheory/go-api-sdk-cscart/logger"
	"go.uber.org/zap"
)

// InitializeProxy routes transport through proxyURL. Username and password, when both
// are set, are sent as Basic proxy credentials on CONNECT and embedded in the proxy URL
// for plain HTTP requests.
func InitializeProxy(transport *http.Transport, proxyURL, proxyUsername, proxyPassword string, log logger.Logger) error {
	if proxyURL == "" {
		return nil
	}

	parsedProxyURL, err := url.Parse(proxyURL)
	if err != nil {
		return fmt.Errorf("parse proxy url: %w", err)
	}
	if parsedProxyURL.Scheme == "" || parsedProxyURL.Host == "" {
		return fmt.Errorf("parse proxy url: %q must be absolute", proxyURL)
	}

	if proxyUsername != "" && proxyPassword != "" {
		parsedProxyURL.User = url.UserPassword(proxyUsername, proxyPassword)
		basic := base64.StdEncoding.EncodeToString([]byte(proxyUsername + ":" + proxyPassword))
		transport.ProxyConnectHeader = http.Header{
			"Proxy-Authorization": []string{"Basic " + basic},
		}
	}
	transport.Proxy = http.ProxyURL(parsedProxyURL)

	if log != nil {
		log.Info("Proxy configured", zap.String("proxy_host", parsedProxyURL.Host))
	}
	return nil
}
