package acl

import (
	"errors"
	"fmt"

	"github.com/jsamuelsen/recharge-proxy/internal/adapters/clients"
	"github.com/jsamuelsen/recharge-proxy/internal/domain"
)

// Raw failure texts. These are dictionary inputs for errmap, so they stay
// byte-for-byte stable.
const (
	msgTimeout       = "请求超时"
	msgConnectionFmt = "连接错误: %s"
	msgTransportFmt  = "请求失败: %s"
	msgHTTPStatusFmt = "HTTP错误: %d"
	msgDecodeFmt     = "JSON解析失败: %s"
	msgMissingCookie = "响应中缺少会话Cookie"
)

// transportFailure normalizes an error returned by clients.Client.
func transportFailure(err error) *domain.UpstreamResult {
	detail := err.Error()

	var te *clients.TransportError
	if errors.As(err, &te) {
		detail = te.Err.Error()
	}

	switch clients.KindOf(err) {
	case clients.FailureTimeout:
		return &domain.UpstreamResult{Kind: domain.ErrorKindTimeout, Error: msgTimeout}
	case clients.FailureConnection:
		return &domain.UpstreamResult{
			Kind:  domain.ErrorKindConnection,
			Error: fmt.Sprintf(msgConnectionFmt, detail),
		}
	default:
		return &domain.UpstreamResult{
			Kind:  domain.ErrorKindTransport,
			Error: fmt.Sprintf(msgTransportFmt, detail),
		}
	}
}

// statusFailure is the result for any status outside 200 and 201.
func statusFailure(code int) *domain.UpstreamResult {
	return &domain.UpstreamResult{
		Kind:     domain.ErrorKindHTTP,
		Error:    fmt.Sprintf(msgHTTPStatusFmt, code),
		HTTPCode: code,
	}
}

// decodeFailure keeps the raw body for diagnosis.
func decodeFailure(code int, err error, raw string) *domain.UpstreamResult {
	return &domain.UpstreamResult{
		Kind:        domain.ErrorKindDecode,
		Error:       fmt.Sprintf(msgDecodeFmt, err),
		HTTPCode:    code,
		RawResponse: raw,
	}
}

// missingSession is returned when the landing page set no session cookie.
func missingSession(code int) *domain.UpstreamResult {
	return &domain.UpstreamResult{
		Kind:     domain.ErrorKindNoSession,
		Error:    msgMissingCookie,
		HTTPCode: code,
	}
}

// reachabilityError reports whether a result proves the upstream is down.
// Any answer from the site short of a 5xx counts as reachable.
func reachabilityError(service string, r *domain.UpstreamResult) error {
	if r == nil {
		return domain.NewUnavailableError(service, "no result")
	}

	if r.Success {
		return nil
	}

	switch r.Kind {
	case domain.ErrorKindHTTP:
		if r.HTTPCode < 500 {
			return nil
		}

		return domain.NewUnavailableError(service, r.Error)
	case domain.ErrorKindBusiness, domain.ErrorKindDecode, domain.ErrorKindNoSession:
		return nil
	default:
		return domain.NewUnavailableError(service, r.Error)
	}
}
