package source

import "strings"

// CNProxyPairSource reads two-line records whose first line is
// "ip port rest". The second line is ignored.
type CNProxyPairSource struct{}

func NewCNProxyPairSource() *CNProxyPairSource {
	return &CNProxyPairSource{}
}

func (s *CNProxyPairSource) Name() string {
	return CNProxyPair
}

func (s *CNProxyPairSource) Span() int {
	return 2
}

func (s *CNProxyPairSource) ParseRecord(lines []string) (Proxy, error) {
	parts, err := splitN(lines[0], 3)
	if err != nil {
		return Proxy{}, err
	}
	return Proxy{Type: "http", Address: hostPort(parts[0], parts[1])}, nil
}

// CNProxySource reads "ip:port type rest" lines.
type CNProxySource struct{}

func NewCNProxySource() *CNProxySource {
	return &CNProxySource{}
}

func (s *CNProxySource) Name() string {
	return CNProxyCom
}

func (s *CNProxySource) Span() int {
	return 1
}

func (s *CNProxySource) ParseRecord(lines []string) (Proxy, error) {
	parts, err := splitN(lines[0], 3)
	if err != nil {
		return Proxy{}, err
	}
	return Proxy{Type: strings.ToLower(parts[1]), Address: parts[0]}, nil
}
