// Package errmap turns raw upstream error text into user-facing messages.
//
// Each service has an ordered dictionary. Lookup is an exact key match first,
// then a case-insensitive substring scan in dictionary order, then the raw
// text unchanged. Nothing here returns an error or panics; an unknown service
// or an unmatched string passes through as-is.
package errmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsamuelsen/recharge-proxy/internal/domain"
)

// Translator looks up messages in one service's dictionary.
type Translator struct {
	service string
	entries Dictionary
	lowered []string
	exact   map[string]string
}

// For returns the translator for service. ok is false for an unknown service;
// the returned translator still works and passes everything through.
func For(service string) (t *Translator, ok bool) {
	if tr, found := translators[service]; found {
		return tr, true
	}

	return newTranslator(service, nil), false
}

var translators = func() map[string]*Translator {
	out := make(map[string]*Translator, len(dictionaries))
	for name, dict := range dictionaries {
		out[name] = newTranslator(name, dict)
	}

	return out
}()

func newTranslator(service string, dict Dictionary) *Translator {
	t := &Translator{
		service: service,
		entries: dict,
		lowered: make([]string, len(dict)),
		exact:   make(map[string]string, len(dict)),
	}

	for i, e := range dict {
		t.lowered[i] = strings.ToLower(e.Key)
		if _, dup := t.exact[e.Key]; !dup {
			t.exact[e.Key] = e.Message
		}
	}

	return t
}

// Service returns the service name the translator was built for.
func (t *Translator) Service() string {
	return t.service
}

// Translate returns the message for raw, or raw itself when nothing matches.
func (t *Translator) Translate(raw string) string {
	if msg, ok := t.exact[raw]; ok {
		return msg
	}

	lower := strings.ToLower(raw)
	for i, key := range t.lowered {
		if strings.Contains(lower, key) {
			return t.entries[i].Message
		}
	}

	return raw
}

// MapStatus returns the message for an HTTP status code.
func (t *Translator) MapStatus(code int) string {
	if len(t.entries) == 0 {
		return fmt.Sprintf("HTTP错误: %d", code)
	}

	if msg, ok := t.exact[strconv.Itoa(code)]; ok {
		return msg
	}

	switch {
	case code >= 500:
		return fmt.Sprintf("服务器内部错误 (%d)，请稍后重试", code)
	case code >= 400:
		return fmt.Sprintf("请求错误 (%d)，请检查输入信息", code)
	default:
		return fmt.Sprintf("HTTP错误: %d", code)
	}
}

// Humanize picks the user-facing message for a failed upstream result.
// Status failures go through MapStatus; everything else through Translate.
// fallback replaces an empty raw error before translation.
func (t *Translator) Humanize(r *domain.UpstreamResult, fallback string) string {
	if r == nil {
		return t.Translate(fallback)
	}

	if r.Kind == domain.ErrorKindHTTP && r.HTTPCode > 0 {
		return t.MapStatus(r.HTTPCode)
	}

	raw := r.Error
	if raw == "" {
		raw = fallback
	}

	return t.Translate(raw)
}

// Translate is a shortcut for For(service).Translate(raw).
func Translate(service, raw string) string {
	t, _ := For(service)

	return t.Translate(raw)
}

// MapStatus is a shortcut for For(service).MapStatus(code).
func MapStatus(service string, code int) string {
	t, _ := For(service)

	return t.MapStatus(code)
}

// Services lists the services that have a dictionary.
func Services() []string {
	return []string{ServiceOpenAI, ServiceRevenueCat}
}
