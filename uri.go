package gripcontrol

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// GripConfig describes a proxy's control endpoint. ControlIss and Key, when
// both set, are used to sign publish requests with a JWT.
type GripConfig struct {
	ControlURI string
	ControlIss string
	Key        []byte
}

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// ParseGripURI turns a GRIP URI such as
//
//	http://localhost:5561/?iss=realm&key=base64:c2VjcmV0
//
// into a GripConfig. The iss and key query parameters are removed from the
// control URI; a "base64:" prefixed key is decoded. The remaining query
// parameters are kept (sorted by name), a trailing "/" is dropped from the
// path and the scheme's default port is omitted.
func ParseGripURI(uri string) (*GripConfig, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGripURI, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no scheme or host", ErrInvalidGripURI, uri)
	}

	query := u.Query()
	config := &GripConfig{ControlIss: query.Get("iss")}
	if key := query.Get("key"); strings.HasPrefix(key, "base64:") {
		config.Key, err = base64.StdEncoding.DecodeString(strings.TrimPrefix(key, "base64:"))
		if err != nil {
			return nil, fmt.Errorf("%w: bad base64 key: %v", ErrInvalidGripURI, err)
		}
	} else if key != "" {
		config.Key = []byte(key)
	}
	query.Del("iss")
	query.Del("key")

	host := u.Host
	if port := u.Port(); port != "" && port == defaultPorts[strings.ToLower(u.Scheme)] {
		host = strings.TrimSuffix(host, ":"+port)
	}
	controlURI := u.Scheme + "://" + host + strings.TrimSuffix(u.EscapedPath(), "/")
	if rawQuery := query.Encode(); rawQuery != "" {
		controlURI += "?" + rawQuery
	}
	config.ControlURI = controlURI
	return config, nil
}
