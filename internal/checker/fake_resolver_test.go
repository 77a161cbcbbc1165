package checker

import (
	"context"
	"errors"
)

// fakeResolver answers from static tables. errs takes precedence over records
// and applies to both record types of a name.
type fakeResolver struct {
	mx   map[string][]string
	txt  map[string][]string
	errs map[string]error
}

func (f *fakeResolver) LookupMX(_ context.Context, name string) ([]string, error) {
	if err, ok := f.errs[name]; ok {
		return nil, &LookupError{Name: name, Type: "MX", Err: err}
	}
	return f.mx[name], nil
}

func (f *fakeResolver) LookupTXT(_ context.Context, name string) ([]string, error) {
	if err, ok := f.errs[name]; ok {
		return nil, &LookupError{Name: name, Type: "TXT", Err: err}
	}
	return f.txt[name], nil
}

var errTimeout = errors.New("i/o timeout")

// healthyZone is a fully configured example.com.
func healthyZone() *fakeResolver {
	return &fakeResolver{
		mx: map[string][]string{
			"example.com": {"mx1.example.com"},
		},
		txt: map[string][]string{
			"example.com":                    {"v=spf1 -all"},
			"_dmarc.example.com":             {"v=DMARC1; p=quarantine"},
			"default._domainkey.example.com": {"v=DKIM1; k=rsa; p=MIGf"},
		},
	}
}
