package source

import "strings"

// TwoColumnSource reads "ip port" lines and labels every entry http.
type TwoColumnSource struct {
	name string
}

func NewGoogleProxySource() *TwoColumnSource {
	return &TwoColumnSource{name: GoogleProxyNet}
}

func NewFreeProxyListSource() *TwoColumnSource {
	return &TwoColumnSource{name: FreeProxyListNet}
}

func (s *TwoColumnSource) Name() string {
	return s.name
}

func (s *TwoColumnSource) Span() int {
	return 1
}

func (s *TwoColumnSource) ParseRecord(lines []string) (Proxy, error) {
	parts, err := splitN(lines[0], 3)
	if err != nil {
		return Proxy{}, err
	}
	return Proxy{Type: "http", Address: hostPort(parts[0], parts[1])}, nil
}

// FourFieldSource reads "ip port type rest" lines. One freeproxylists
// snapshot keeps the type as written, the other lower-cases it.
type FourFieldSource struct {
	name  string
	lower bool
}

func NewFreeProxyListsSource() *FourFieldSource {
	return &FourFieldSource{name: FreeProxyListsNet, lower: true}
}

func NewFreeProxyListsRawSource() *FourFieldSource {
	return &FourFieldSource{name: FreeProxyListsRaw, lower: false}
}

func (s *FourFieldSource) Name() string {
	return s.name
}

func (s *FourFieldSource) Span() int {
	return 1
}

func (s *FourFieldSource) ParseRecord(lines []string) (Proxy, error) {
	parts, err := splitN(lines[0], 4)
	if err != nil {
		return Proxy{}, err
	}
	proxyType := parts[2]
	if s.lower {
		proxyType = strings.ToLower(proxyType)
	}
	return Proxy{Type: proxyType, Address: hostPort(parts[0], parts[1])}, nil
}
