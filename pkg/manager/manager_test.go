package manager

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proxymerge/internal/config"
	"proxymerge/pkg/source"
)

var snapshots = map[string]string{
	source.GoogleProxyNet:    "1.2.3.4   8080\n",
	source.FreeProxyListNet:  "1.2.3.4 8080\n5.5.5.5 80\n",
	source.HideMyAss:         "5 minutes 10.0.0.1 3128\nsocks5 extra\n",
	source.FreeProxyListsNet: "3.3.3.3 1080 SOCKS4 Anonymous\n",
	source.SamairHTTP:        "6.6.6.6:8080 anonymous\n",
	source.CNProxyCom:        "8.8.8.8:80 HTTP Beijing\n",
	source.CNProxyPair:       "1.1.1.1 80 HTTP\nsecond\n",
	source.ProxyIPCN:         "12.12.12.12:80\n",
	source.FreeProxyListsRaw: "3.3.3.3 1080 SOCKS5 x\n",
}

const expectedResult = `# google_proxy.net
http 1.2.3.4:8080
# free_proxy_list.net
http 1.2.3.4:8080
http 5.5.5.5:80
# hidemyass
socks5 10.0.0.1:3128
# freeproxylists.net
socks4 3.3.3.3:1080
# samair.ru_http
http 6.6.6.6:8080
# cnproxy.com
http 8.8.8.8:80
# cn_proxy_com
http 1.1.1.1:80
# proxy_ipcn_org
http 12.12.12.12:80
# freeproxylists_net
SOCKS5 3.3.3.3:1080
`

func setup(t *testing.T, files map[string]string) (afero.Fs, *config.Config) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, "/snap/"+name, []byte(content), 0644))
	}
	cfg := &config.Config{
		Input:   config.InputConfig{Dir: "/snap"},
		Output:  config.OutputConfig{Result: "result.txt"},
		Parser:  config.ParserConfig{Strict: true},
		Sources: source.Names,
		Log:     config.LogConfig{Level: "info"},
	}
	return fs, cfg
}

func run(t *testing.T, fs afero.Fs, cfg *config.Config) ([]SourceStats, error) {
	t.Helper()
	mgr, err := NewManager(fs, cfg)
	require.NoError(t, err)
	_, stats, err := mgr.Run(context.Background(), "test0000")
	return stats, err
}

func TestRunRoundTrip(t *testing.T) {
	fs, cfg := setup(t, snapshots)

	mgr, err := NewManager(fs, cfg)
	require.NoError(t, err)
	res, stats, err := mgr.Run(context.Background(), "test0000")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/snap/result.txt")
	require.NoError(t, err)
	assert.Equal(t, expectedResult, string(data))

	assert.Equal(t, 8, res.Unique)
	assert.Equal(t, map[string]int{"http": 6, "socks5": 1, "socks4": 1}, res.ByType)
	require.Len(t, stats, len(source.Names))
	assert.Equal(t, source.FreeProxyListNet, stats[1].Name)
	assert.Equal(t, 2, stats[1].Emitted)
}

func TestRunTruncatesPreviousResult(t *testing.T) {
	files := map[string]string{"result.txt": "http 9.9.9.9:9\n"}
	for k, v := range snapshots {
		files[k] = v
	}
	fs, cfg := setup(t, files)

	_, err := run(t, fs, cfg)
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/snap/result.txt")
	require.NoError(t, err)
	assert.Equal(t, expectedResult, string(data))
}

func TestRunLegacyHeaders(t *testing.T) {
	fs, cfg := setup(t, snapshots)
	cfg.Output.LegacyHeaders = true

	mgr, err := NewManager(fs, cfg)
	require.NoError(t, err)
	res, _, err := mgr.Run(context.Background(), "test0000")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/snap/result.txt")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# hidemyasssocks5 10.0.0.1:3128\n")

	// Entries glued to a header read back as comments.
	assert.Equal(t, 2, res.Unique)
	assert.Equal(t, map[string]int{"http": 2}, res.ByType)
}

func TestRunMissingSourceFile(t *testing.T) {
	files := map[string]string{}
	for k, v := range snapshots {
		if k != source.SamairHTTP {
			files[k] = v
		}
	}
	fs, cfg := setup(t, files)

	_, err := run(t, fs, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), source.SamairHTTP)

	data, err := afero.ReadFile(fs, "/snap/result.txt")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# freeproxylists.net\nsocks4 3.3.3.3:1080\n")
	assert.NotContains(t, string(data), "# samair.ru_http")
}

func TestRunMalformedRecord(t *testing.T) {
	files := map[string]string{}
	for k, v := range snapshots {
		files[k] = v
	}
	files[source.CNProxyCom] = "8.8.8.8:80 HTTP Beijing\n8.8.4.4:80\n"

	fs, cfg := setup(t, files)
	_, err := run(t, fs, cfg)
	var perr *source.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, source.CNProxyCom, perr.Source)
	assert.Equal(t, 2, perr.Line)

	data, err := afero.ReadFile(fs, "/snap/result.txt")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# cnproxy.com\nhttp 8.8.8.8:80\n")
	assert.NotContains(t, string(data), "# cn_proxy_com")

	cfg.Parser.Strict = false
	stats, err := run(t, fs, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[5].Skipped)
	assert.Error(t, stats[5].Errs)
}

func TestRunSelectedSources(t *testing.T) {
	fs, cfg := setup(t, snapshots)
	cfg.Sources = []string{source.ProxyIPCN, source.HideMyAss}

	_, err := run(t, fs, cfg)
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/snap/result.txt")
	require.NoError(t, err)
	assert.Equal(t, "# proxy_ipcn_org\nhttp 12.12.12.12:80\n# hidemyass\nsocks5 10.0.0.1:3128\n", string(data))
}

func TestRunCancelled(t *testing.T) {
	fs, cfg := setup(t, snapshots)
	mgr, err := NewManager(fs, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = mgr.Run(ctx, "test0000")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewManagerUnknownSource(t *testing.T) {
	fs, cfg := setup(t, nil)
	cfg.Sources = []string{"unknown"}
	_, err := NewManager(fs, cfg)
	assert.Error(t, err)
}

func TestRunMissingInputDirIsNotCreated(t *testing.T) {
	fs, cfg := setup(t, nil)
	cfg.Input.Dir = "/snpa"

	_, err := run(t, fs, cfg)
	require.Error(t, err)

	exists, err := afero.DirExists(fs, "/snpa")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRunResultInSubdirectory(t *testing.T) {
	fs, cfg := setup(t, snapshots)
	cfg.Output.Result = "out/merged.txt"

	_, err := run(t, fs, cfg)
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/snap/out/merged.txt")
	require.NoError(t, err)
	assert.Equal(t, expectedResult, string(data))
}
