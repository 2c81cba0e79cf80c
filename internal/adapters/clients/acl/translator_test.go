package acl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/recharge-proxy/internal/adapters/clients"
	"github.com/jsamuelsen/recharge-proxy/internal/domain"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestTranslateResponse(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		success  bool
		kind     domain.ErrorKind
		errText  string
		httpCode int
		raw      string
	}{
		{
			name: "success object", status: 200,
			body:    `{"success":true,"data":{"code_status":"active"}}`,
			success: true, httpCode: 200,
		},
		{
			name: "created counts as success status", status: 201,
			body:    `{"success":true}`,
			success: true, httpCode: 201,
		},
		{
			name: "business failure keeps upstream text", status: 200,
			body:    `{"success":false,"error":"Invalid token"}`,
			kind:    domain.ErrorKindBusiness, errText: "Invalid token", httpCode: 200,
		},
		{
			name: "missing success flag is failure", status: 200,
			body:    `{"message":"ok"}`,
			kind:    domain.ErrorKindBusiness, httpCode: 200,
		},
		{
			name: "non-2xx", status: 502, body: `<html>bad gateway</html>`,
			kind: domain.ErrorKindHTTP, errText: "HTTP错误: 502", httpCode: 502,
		},
		{
			name: "204 is not accepted", status: 204, body: ``,
			kind: domain.ErrorKindHTTP, errText: "HTTP错误: 204", httpCode: 204,
		},
		{
			name: "html body on 200", status: 200, body: `<html>maintenance</html>`,
			kind: domain.ErrorKindDecode, httpCode: 200, raw: `<html>maintenance</html>`,
		},
		{
			name: "json array on 200", status: 200, body: `[1,2]`,
			kind: domain.ErrorKindDecode, httpCode: 200, raw: `[1,2]`,
		},
		{
			name: "empty body on 200", status: 200, body: ``,
			kind: domain.ErrorKindDecode, httpCode: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := translateResponse(response(tt.status, tt.body))

			assert.Equal(t, tt.success, r.Success)
			assert.Equal(t, tt.kind, r.Kind)
			assert.Equal(t, tt.httpCode, r.HTTPCode)
			assert.Equal(t, tt.raw, r.RawResponse)

			if tt.errText != "" {
				assert.Equal(t, tt.errText, r.Error)
			}

			if tt.kind == domain.ErrorKindDecode {
				assert.True(t, strings.HasPrefix(r.Error, "JSON解析失败: "), r.Error)
				assert.Nil(t, r.Body)
			}
		})
	}
}

func TestTranslateResponse_InjectsHTTPCode(t *testing.T) {
	r := translateResponse(response(200, `{"success":true,"http_code":999,"data":{"n":12345678901234567890}}`))

	require.True(t, r.Success)
	assert.Equal(t, 200, r.Body["http_code"])

	out, err := json.Marshal(r.Body["data"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":12345678901234567890}`, string(out), "numbers pass through exactly")
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{true, true},
		{false, false},
		{json.Number("1"), true},
		{json.Number("0"), false},
		{"", false},
		{"false", true},
		{map[string]any{}, false},
		{map[string]any{"a": 1}, true},
		{[]any{}, false},
		{[]any{1}, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, truthy(tt.in), "%#v", tt.in)
	}
}

func TestErrorText(t *testing.T) {
	assert.Empty(t, errorText(nil))
	assert.Equal(t, "卡密不存在", errorText("卡密不存在"))
	assert.Equal(t, "404", errorText(json.Number("404")))
	assert.Equal(t, "false", errorText(false))
	assert.JSONEq(t, `{"code":"x"}`, errorText(map[string]any{"code": "x"}))
}

func TestTransportFailure(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   domain.ErrorKind
		prefix string
	}{
		{
			name:   "timeout",
			err:    &clients.TransportError{Kind: clients.FailureTimeout, Err: context.DeadlineExceeded},
			kind:   domain.ErrorKindTimeout,
			prefix: "请求超时",
		},
		{
			name: "connection refused",
			err: &clients.TransportError{
				Kind: clients.FailureConnection,
				Err:  &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
			},
			kind:   domain.ErrorKindConnection,
			prefix: "连接错误: dial tcp",
		},
		{
			name:   "circuit open",
			err:    &clients.TransportError{Kind: clients.FailureOther, Err: clients.ErrCircuitOpen},
			kind:   domain.ErrorKindTransport,
			prefix: "请求失败: circuit breaker open",
		},
		{
			name:   "body read deadline",
			err:    context.DeadlineExceeded,
			kind:   domain.ErrorKindTimeout,
			prefix: "请求超时",
		},
		{
			name:   "unclassified",
			err:    errors.New("unexpected EOF"),
			kind:   domain.ErrorKindTransport,
			prefix: "请求失败: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := transportFailure(tt.err)

			assert.False(t, r.Success)
			assert.Equal(t, 0, r.HTTPCode)
			assert.Equal(t, tt.kind, r.Kind)
			assert.True(t, strings.HasPrefix(r.Error, tt.prefix), r.Error)
		})
	}
}

func TestReachabilityError(t *testing.T) {
	assert.NoError(t, reachabilityError("chongzhi", &domain.UpstreamResult{Success: true}))
	assert.NoError(t, reachabilityError("chongzhi", statusFailure(404)))
	assert.NoError(t, reachabilityError("chongzhi", missingSession(200)))

	err := reachabilityError("chongzhi", statusFailure(503))
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))

	err = reachabilityError("chongzhi", transportFailure(context.DeadlineExceeded))
	assert.True(t, domain.IsUnavailable(err))

	assert.True(t, domain.IsUnavailable(reachabilityError("chongzhi", nil)))
}
