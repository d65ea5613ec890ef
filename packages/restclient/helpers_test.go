package restclient

import (
	"net"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func configFromServer(t *testing.T, server *httptest.Server) Config {
	t.Helper()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	host, portText, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portText)
	require.NoError(t, err)

	cfg := DefaultConfig(host)
	cfg.Scheme = u.Scheme
	cfg.Port = port
	return cfg
}
