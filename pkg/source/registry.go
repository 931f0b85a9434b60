package source

import "fmt"

const (
	GoogleProxyNet    = "google_proxy.net"
	FreeProxyListNet  = "free_proxy_list.net"
	HideMyAss         = "hidemyass"
	FreeProxyListsNet = "freeproxylists.net"
	SamairHTTP        = "samair.ru_http"
	CNProxyCom        = "cnproxy.com"
	CNProxyPair       = "cn_proxy_com"
	ProxyIPCN         = "proxy_ipcn_org"
	FreeProxyListsRaw = "freeproxylists_net"
)

// Names lists every known source in run order.
var Names = []string{
	GoogleProxyNet,
	FreeProxyListNet,
	HideMyAss,
	FreeProxyListsNet,
	SamairHTTP,
	CNProxyCom,
	CNProxyPair,
	ProxyIPCN,
	FreeProxyListsRaw,
}

// Lookup returns the source registered under name.
func Lookup(name string) (Source, error) {
	switch name {
	case GoogleProxyNet:
		return NewGoogleProxySource(), nil
	case FreeProxyListNet:
		return NewFreeProxyListSource(), nil
	case HideMyAss:
		return NewHideMyAssSource(), nil
	case FreeProxyListsNet:
		return NewFreeProxyListsSource(), nil
	case SamairHTTP:
		return NewSamairSource(), nil
	case CNProxyCom:
		return NewCNProxySource(), nil
	case CNProxyPair:
		return NewCNProxyPairSource(), nil
	case ProxyIPCN:
		return NewIPCNSource(), nil
	case FreeProxyListsRaw:
		return NewFreeProxyListsRawSource(), nil
	}
	return nil, fmt.Errorf("unknown source %q", name)
}

// Default returns all sources in run order.
func Default() []Source {
	sources := make([]Source, 0, len(Names))
	for _, name := range Names {
		src, _ := Lookup(name)
		sources = append(sources, src)
	}
	return sources
}

// Select resolves names in the given order. An empty list means Default.
func Select(names []string) ([]Source, error) {
	if len(names) == 0 {
		return Default(), nil
	}
	sources := make([]Source, 0, len(names))
	for _, name := range names {
		src, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// TerminatedHeader reports whether the original tool ended the header
// line of the source with a newline. Only the two-column sources did.
func TerminatedHeader(name string) bool {
	return name == GoogleProxyNet || name == FreeProxyListNet
}
