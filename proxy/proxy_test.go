package proxy

import (
	"net/http"
	"testing"

	"github.com/deploymenttheory/go-api-sdk-cscart/mocklogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeProxy(t *testing.T) {
	t.Run("empty url is a no-op", func(t *testing.T) {
		transport := &http.Transport{}
		require.NoError(t, InitializeProxy(transport, "", "", "", nil))
		assert.Nil(t, transport.Proxy)
	})

	t.Run("with credentials", func(t *testing.T) {
		transport := &http.Transport{}
		log := mocklogger.NewMockLogger()
		require.NoError(t, InitializeProxy(transport, "http://proxy.internal:3128", "svc", "pw", log))

		req, _ := http.NewRequest(http.MethodGet, "https://shop.example/api/orders", nil)
		proxyURL, err := transport.Proxy(req)
		require.NoError(t, err)
		assert.Equal(t, "proxy.internal:3128", proxyURL.Host)
		assert.Equal(t, "svc", proxyURL.User.Username())
		assert.Equal(t, "Basic c3ZjOnB3", transport.ProxyConnectHeader.Get("Proxy-Authorization"))
		assert.True(t, log.CalledWith("Info"))
	})

	t.Run("relative url rejected", func(t *testing.T) {
		assert.Error(t, InitializeProxy(&http.Transport{}, "proxy.internal", "", "", nil))
	})
}
