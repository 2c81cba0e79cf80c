// Package acl is the Anti-Corruption Layer between the recharge site and the
// domain.
//
// The recharge site speaks loosely typed JSON behind PHP endpoints and signals
// failure in several ways: transport errors, non-2xx statuses, HTML or empty
// bodies, and JSON objects carrying success=false. The ACL folds all of them
// into one value, [domain.UpstreamResult], so nothing above this package ever
// sees an *http.Response or a client error.
//
// # Normalization rules
//
//   - timeout → http_code 0, kind timeout, "请求超时"
//   - DNS, dial, reset or TLS failure → http_code 0, kind connection
//   - any other transport failure, including an open breaker → kind transport
//   - status other than 200/201 → kind http, "HTTP错误: <code>"
//   - 200/201 whose body is not a JSON object → kind decode, raw body kept
//   - JSON object → passed through with http_code injected; success=false
//     becomes kind business with the upstream's own error text
//
// Error text produced here is raw. Humanizing it is the errmap package's job.
package acl
