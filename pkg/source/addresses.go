package source

import "strings"

// SamairSource reads "ip:port rest" lines of http proxies.
type SamairSource struct{}

func NewSamairSource() *SamairSource {
	return &SamairSource{}
}

func (s *SamairSource) Name() string {
	return SamairHTTP
}

func (s *SamairSource) Span() int {
	return 1
}

func (s *SamairSource) ParseRecord(lines []string) (Proxy, error) {
	parts, err := splitN(lines[0], 2)
	if err != nil {
		return Proxy{}, err
	}
	return Proxy{Type: "http", Address: parts[0]}, nil
}

// IPCNSource reads one bare http proxy address per line.
type IPCNSource struct{}

func NewIPCNSource() *IPCNSource {
	return &IPCNSource{}
}

func (s *IPCNSource) Name() string {
	return ProxyIPCN
}

func (s *IPCNSource) Span() int {
	return 1
}

func (s *IPCNSource) ParseRecord(lines []string) (Proxy, error) {
	return Proxy{Type: "http", Address: strings.TrimSpace(lines[0])}, nil
}
