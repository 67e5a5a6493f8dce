// Package normalize puts relay URLs into one canonical form, so relay hints
// written by hand compare and encode the same.
package normalize

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/purell"

	"nostrcore.lol/chk"
	"nostrcore.lol/log"
	"nostrcore.lol/reason"
)

const (
	WS    = "ws://"
	WSS   = "wss://"
	HTTP  = "http://"
	HTTPS = "https://"
)

const flags = purell.FlagsSafe | purell.FlagRemoveDotSegments | purell.FlagRemoveDuplicateSlashes

func hasScheme(u string) bool {
	return strings.HasPrefix(u, HTTP) || strings.HasPrefix(u, HTTPS) ||
		strings.HasPrefix(u, WS) || strings.HasPrefix(u, WSS)
}

// URL normalizes a relay URL:
//
// - adds wss:// to addresses with no scheme and no port, or port 443, which is
// dropped
//
// - adds ws:// to addresses with no scheme and any other port
//
// - converts http/s to ws/s
//
// - lowercases, resolves dot segments and removes repeated and trailing path
// slashes.
func URL[V string | []byte](v V) (u string, err error) {
	u = strings.ToLower(strings.TrimSpace(string(v)))
	if u == "" {
		err = reason.MissingRequiredField.F("empty relay URL")
		return
	}
	if !hasScheme(u) {
		if host, port, found := strings.Cut(u, ":"); found {
			if strings.Contains(port, ":") {
				err = reason.MalformedEncoding.F("more than one ':' in relay URL")
				return
			}
			digits, rest, _ := strings.Cut(port, "/")
			var p uint64
			if p, err = strconv.ParseUint(digits, 10, 16); chk.D(err) {
				err = reason.MalformedEncoding.Wrap(err, "relay URL port")
				return
			}
			if rest != "" {
				rest = "/" + rest
			}
			if p == 443 {
				u = WSS + host + rest
			} else {
				u = WS + u
			}
		} else {
			u = WSS + u
		}
	}
	var p *url.URL
	if p, err = url.Parse(u); chk.D(err) {
		err = reason.MalformedEncoding.Wrap(err, "relay URL")
		return
	}
	switch p.Scheme {
	case "https":
		p.Scheme = "wss"
	case "http":
		p.Scheme = "ws"
	}
	if p.Host == "" {
		err = reason.MalformedEncoding.F("relay URL has no host")
		return
	}
	u = purell.NormalizeURL(p, flags)
	if p, err = url.Parse(u); chk.D(err) {
		err = reason.MalformedEncoding.Wrap(err, "relay URL")
		return
	}
	p.Path = strings.TrimRight(p.Path, "/")
	p.RawPath = ""
	u = p.String()
	log.T.F("normalized relay URL %s", u)
	return
}

// URLs normalizes a list of relay URLs, dropping repeats.
func URLs(in []string) (out []string, err error) {
	seen := make(map[string]struct{}, len(in))
	for _, r := range in {
		var u string
		if u, err = URL(r); err != nil {
			return nil, err
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return
}
